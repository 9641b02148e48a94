package services

import (
	"log"
	"net/http"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	apiError "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CategoryService interface
type CategoryService interface {
	ListCategories() ([]models.Category, *apiError.Error)
	CreateCategory(req *models.CreateCategoryRequest) (*models.Category, *apiError.Error)
}

// categoryService struct
type categoryService struct {
	Config       *config.Config
	categoryRepo db.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo db.CategoryRepository, conf *config.Config) CategoryService {
	return &categoryService{
		Config:       conf,
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) ListCategories() ([]models.Category, *apiError.Error) {
	categories, err := s.categoryRepo.ListActiveCategories()
	if err != nil {
		log.Printf("ListCategories error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(req *models.CreateCategoryRequest) (*models.Category, *apiError.Error) {
	if _, err := s.categoryRepo.FindCategoryByValue(req.Value); err == nil {
		return nil, apiError.New("a category with that value already exists", http.StatusConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiError.ErrInternalServerError
	}

	icon := req.Icon
	if icon == "" {
		icon = "📦"
	}

	category := &models.Category{
		Value:  req.Value,
		Label:  req.Label,
		Icon:   icon,
		Order:  req.Order,
		Active: true,
	}
	if err := s.categoryRepo.CreateCategory(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apiError.New("a category with that value already exists", http.StatusConflict)
		}
		log.Printf("CreateCategory error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return category, nil
}
