package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/services"
	"github.com/lostconnect/backend/services/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T) (*Server, *gin.Engine, *db.GormDB) {
	t.Helper()
	t.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gdb := &db.GormDB{DB: gormDB}
	conf := &config.Config{JWTSecret: testSecret}

	authRepo := db.NewAuthRepo(gdb)
	postRepo := db.NewPostRepo(gdb)
	commentRepo := db.NewCommentRepo(gdb)
	reactionRepo := db.NewReactionRepo(gdb)
	categoryRepo := db.NewCategoryRepo(gdb)
	mediaRepo := db.NewMediaRepo()

	mediaService := services.NewMediaService(mediaRepo, conf)

	s := &Server{
		Config:             conf,
		DB:                 *gdb,
		AuthRepository:     authRepo,
		AuthService:        services.NewAuthService(authRepo, conf),
		PostRepository:     postRepo,
		PostService:        services.NewPostService(postRepo, categoryRepo, mediaService, conf),
		CommentRepository:  commentRepo,
		CommentService:     services.NewCommentService(commentRepo, postRepo, mediaService, conf),
		ReactionRepository: reactionRepo,
		ReactionService:    services.NewReactionService(reactionRepo, postRepo, conf),
		CategoryRepository: categoryRepo,
		CategoryService:    services.NewCategoryService(categoryRepo, conf),
		MediaService:       mediaService,
	}

	router := s.setupRouter()
	return s, router, gdb
}

func createTestUser(t *testing.T, gdb *db.GormDB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, HashedPassword: "x"}
	if err := gdb.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, gdb *db.GormDB, userID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      userID,
		Type:        models.PostTypeLost,
		Title:       "Lost black wallet",
		Description: "Black leather wallet lost near the central station entrance.",
		Category:    "accessories",
		Status:      models.PostStatusActive,
	}
	if err := gdb.DB.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func authHeader(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := jwt.GenerateToken(user.ID, user.Email, testSecret)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(router *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePostRequiresAuth(t *testing.T) {
	_, router, _ := setupTestServer(t)

	w := doJSON(router, http.MethodPost, "/api/v1/posts", "", gin.H{"title": "anything"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdatePostRejectsNonOwner(t *testing.T) {
	_, router, gdb := setupTestServer(t)
	alice := createTestUser(t, gdb, "alice@example.com")
	bob := createTestUser(t, gdb, "bob@example.com")
	post := createTestPost(t, gdb, alice.ID)

	title := "A completely new title"
	w := doJSON(router, http.MethodPatch, fmt.Sprintf("/api/v1/posts/%d", post.ID),
		authHeader(t, bob), gin.H{"title": title})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Post
	if err := gdb.DB.First(&stored, post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if stored.Title != post.Title {
		t.Fatalf("title changed despite rejection")
	}
}

func TestDeletePostRejectsNonOwner(t *testing.T) {
	_, router, gdb := setupTestServer(t)
	alice := createTestUser(t, gdb, "alice@example.com")
	bob := createTestUser(t, gdb, "bob@example.com")
	post := createTestPost(t, gdb, alice.ID)

	w := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID),
		authHeader(t, bob), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteCommentRejectsNonOwner(t *testing.T) {
	_, router, gdb := setupTestServer(t)
	alice := createTestUser(t, gdb, "alice@example.com")
	bob := createTestUser(t, gdb, "bob@example.com")
	post := createTestPost(t, gdb, alice.ID)

	w := doJSON(router, http.MethodPost, "/api/v1/comments", authHeader(t, alice), gin.H{
		"postId":  post.ID,
		"content": "my comment",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create comment failed: %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Comment models.CommentResponse `json:"comment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", created.Comment.ID),
		authHeader(t, bob), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateCommentRejectsWhitespaceContent(t *testing.T) {
	_, router, gdb := setupTestServer(t)
	alice := createTestUser(t, gdb, "alice@example.com")
	post := createTestPost(t, gdb, alice.ID)

	w := doJSON(router, http.MethodPost, "/api/v1/comments", authHeader(t, alice), gin.H{
		"postId":  post.ID,
		"content": "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for whitespace-only content, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := gdb.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty comment was persisted")
	}
}

func TestCreatePostRejectsPaddedShortTitle(t *testing.T) {
	_, router, gdb := setupTestServer(t)
	alice := createTestUser(t, gdb, "alice@example.com")

	w := doJSON(router, http.MethodPost, "/api/v1/posts", authHeader(t, alice), gin.H{
		"type":        "lost",
		"title":       "  a  ",
		"description": "A description comfortably longer than twenty characters.",
		"category":    "other",
		"images":      []gin.H{{"url": "https://cdn.example.com/a.jpg", "publicId": "a"}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for padded short title, got %d: %s", w.Code, w.Body.String())
	}
}

func TestToggleReactionRoundTrip(t *testing.T) {
	_, router, gdb := setupTestServer(t)
	alice := createTestUser(t, gdb, "alice@example.com")
	post := createTestPost(t, gdb, alice.ID)

	body := gin.H{"postId": post.ID, "type": "like"}
	w := doJSON(router, http.MethodPost, "/api/v1/reactions", authHeader(t, alice), body)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d: %s", w.Code, w.Body.String())
	}
	var toggled struct {
		Action string `json:"action"`
		Counts struct {
			Like int `json:"like"`
		} `json:"counts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if toggled.Action != models.ReactionCreated || toggled.Counts.Like != 1 {
		t.Fatalf("unexpected toggle response: %s", w.Body.String())
	}

	// Anonymous reads see the counts but no user reaction.
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/reactions?postId=%d", post.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get reactions: %d: %s", w.Code, w.Body.String())
	}
	var state struct {
		Counts struct {
			Like int `json:"like"`
		} `json:"counts"`
		UserReaction *string `json:"userReaction"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Counts.Like != 1 || state.UserReaction != nil {
		t.Fatalf("unexpected anonymous state: %s", w.Body.String())
	}

	// The same user reads back their own reaction.
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/reactions?postId=%d", post.ID), authHeader(t, alice), nil)
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.UserReaction == nil || *state.UserReaction != models.ReactionLike {
		t.Fatalf("expected like as user reaction: %s", w.Body.String())
	}
}

func TestUploadRejectsUnknownFolder(t *testing.T) {
	_, router, gdb := setupTestServer(t)
	alice := createTestUser(t, gdb, "alice@example.com")

	cases := []string{"../../etc", "somewhere/else", ".."}
	for _, folder := range cases {
		w := doJSON(router, http.MethodPost, "/api/v1/upload", authHeader(t, alice), gin.H{
			"data":   "data:image/jpeg;base64,AAAA",
			"folder": folder,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("folder %q: expected 400, got %d: %s", folder, w.Code, w.Body.String())
		}
	}
}

func TestListCategoriesSeeded(t *testing.T) {
	_, router, _ := setupTestServer(t)

	w := doJSON(router, http.MethodGet, "/api/v1/categories", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list categories: %d: %s", w.Code, w.Body.String())
	}
	var payload struct {
		Categories []models.Category `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Categories) == 0 {
		t.Fatalf("expected seeded categories")
	}
}
