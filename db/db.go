package db

import (
	"fmt"
	"log"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := Migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	log.Printf("Connecting to postgres: %s@%s:%d/%s", c.PostgresUser, c.PostgresHost, c.PostgresPort, c.PostgresDB)
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{TranslateError: true}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

// Migrate runs AutoMigrate for every model and seeds reference data.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Category{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedCategories(db); err != nil {
		return fmt.Errorf("seeding categories error: %v", err)
	}

	return nil
}

// SeedCategories inserts the default post categories if they are missing.
// Existing rows are left untouched so admin edits survive restarts.
func SeedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Value: "electronics", Label: "Electronics", Icon: "📱", Order: 1, Active: true},
		{Value: "clothing", Label: "Clothing", Icon: "👕", Order: 2, Active: true},
		{Value: "accessories", Label: "Accessories", Icon: "👜", Order: 3, Active: true},
		{Value: "documents", Label: "Documents", Icon: "📄", Order: 4, Active: true},
		{Value: "pets", Label: "Pets", Icon: "🐾", Order: 5, Active: true},
		{Value: "vehicles", Label: "Vehicles", Icon: "🚗", Order: 6, Active: true},
		{Value: "jewelry", Label: "Jewelry", Icon: "💎", Order: 7, Active: true},
		{Value: "keys", Label: "Keys", Icon: "🔑", Order: 8, Active: true},
		{Value: "bags", Label: "Bags/Backpacks", Icon: "🎒", Order: 9, Active: true},
		{Value: "other", Label: "Other", Icon: "📦", Order: 10, Active: true},
	}

	for _, category := range categories {
		if err := db.Where(models.Category{Value: category.Value}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}

	return nil
}
