package db

import (
	"github.com/lostconnect/backend/models"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	ListActiveCategories() ([]models.Category, error)
	FindCategoryByValue(value string) (*models.Category, error)
	CreateCategory(category *models.Category) error
}

type categoryRepo struct {
	DB *gorm.DB
}

func NewCategoryRepo(db *GormDB) CategoryRepository {
	return &categoryRepo{db.DB}
}

func (r *categoryRepo) ListActiveCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.Where("active = ?", true).Order("sort_order ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) FindCategoryByValue(value string) (*models.Category, error) {
	var category models.Category
	if err := r.DB.Where("value = ?", value).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) CreateCategory(category *models.Category) error {
	return r.DB.Create(category).Error
}
