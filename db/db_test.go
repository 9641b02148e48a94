package db

import (
	"fmt"
	"testing"

	"github.com/lostconnect/backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *GormDB {
	t.Helper()
	// A named shared in-memory database keeps every pooled connection
	// pointed at the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &GormDB{DB: gdb}
}

func seedUser(t *testing.T, gdb *GormDB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:           "Test User",
		Email:          email,
		HashedPassword: "x",
	}
	if err := gdb.DB.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedPost(t *testing.T, gdb *GormDB, userID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      userID,
		Type:        models.PostTypeLost,
		Title:       "Lost black wallet",
		Description: "Black leather wallet lost near the central station entrance.",
		Category:    "accessories",
		Status:      models.PostStatusActive,
		Images:      []models.Image{{URL: "https://cdn.example.com/a.jpg"}},
	}
	if err := gdb.DB.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func seedPosts(t *testing.T, gdb *GormDB, userID uint, n int) []models.Post {
	t.Helper()
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			UserID:      userID,
			Type:        models.PostTypeLost,
			Title:       fmt.Sprintf("Lost item number %d", i),
			Description: "A descriptive paragraph long enough to satisfy validation rules.",
			Category:    "other",
			Status:      models.PostStatusActive,
		}
		if err := gdb.DB.Create(&post).Error; err != nil {
			t.Fatalf("seed post %d: %v", i, err)
		}
		posts = append(posts, post)
	}
	return posts
}
