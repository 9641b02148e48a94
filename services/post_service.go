package services

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	apiError "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const postImagesFolder = "lostconnect/posts"

// PostService interface
type PostService interface {
	CreatePost(ctx context.Context, userID uint, req *models.CreatePostRequest) (*models.PostResponse, *apiError.Error)
	GetFeed(query models.FeedQuery) ([]models.PostResponse, models.Pagination, *apiError.Error)
	GetPost(postID uint) (*models.PostResponse, *apiError.Error)
	UpdatePost(postID, userID uint, req *models.UpdatePostRequest) (*models.PostResponse, *apiError.Error)
	DeletePost(ctx context.Context, postID, userID uint) *apiError.Error
}

// postService struct
type postService struct {
	Config       *config.Config
	postRepo     db.PostRepository
	categoryRepo db.CategoryRepository
	mediaService MediaService
}

// NewPostService creates a new instance of PostService
func NewPostService(postRepo db.PostRepository, categoryRepo db.CategoryRepository, mediaService MediaService, conf *config.Config) PostService {
	return &postService{
		Config:       conf,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		mediaService: mediaService,
	}
}

// normalizeTags lowercases and trims tags, dropping empties.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (p *postService) CreatePost(ctx context.Context, userID uint, req *models.CreatePostRequest) (*models.PostResponse, *apiError.Error) {
	if _, err := p.categoryRepo.FindCategoryByValue(req.Category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("unknown category", http.StatusBadRequest)
		}
		return nil, apiError.ErrInternalServerError
	}

	// Split images the client already pushed through /upload from raw
	// data URIs that still need uploading.
	images := make([]models.Image, 0, len(req.Images))
	var pending []string
	for _, input := range req.Images {
		switch {
		case input.URL != "" && input.PublicID != "":
			images = append(images, models.Image{URL: input.URL, PublicID: input.PublicID})
		case input.Data != "":
			pending = append(pending, input.Data)
		default:
			return nil, apiError.New("each image needs either url+publicId or data", http.StatusBadRequest)
		}
	}

	uploaded, err := p.mediaService.UploadDataURIBatch(ctx, pending, postImagesFolder)
	if err != nil {
		log.Printf("CreatePost image upload failed: %v", err)
		return nil, apiError.New("failed to upload images", http.StatusInternalServerError)
	}
	images = append(images, uploaded...)

	post := &models.Post{
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Images:      images,
		Location:    req.Location,
		Status:      models.PostStatusActive,
		Tags:        normalizeTags(req.Tags),
	}

	if err := p.postRepo.CreatePost(post); err != nil {
		log.Printf("CreatePost error: %v", err)
		if cleanupErr := p.mediaService.DeleteImages(ctx, uploaded); cleanupErr != nil {
			log.Printf("failed to clean up images after post create failure: %v", cleanupErr)
		}
		return nil, apiError.ErrInternalServerError
	}

	resp := post.ToResponse()
	return &resp, nil
}

func (p *postService) GetFeed(query models.FeedQuery) ([]models.PostResponse, models.Pagination, *apiError.Error) {
	if query.Limit < 1 {
		query.Limit = 10
	}
	if query.Limit > 50 {
		query.Limit = 50
	}
	if query.Status == "" {
		query.Status = models.PostStatusActive
	}

	posts, hasMore, err := p.postRepo.GetPosts(query)
	if err != nil {
		log.Printf("GetFeed error: %v", err)
		return nil, models.Pagination{}, apiError.ErrInternalServerError
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, posts[i].ToResponse())
	}

	pagination := models.Pagination{HasMore: hasMore}
	if hasMore && len(posts) > 0 {
		cursor := posts[len(posts)-1].ID
		pagination.NextCursor = &cursor
	}
	return responses, pagination, nil
}

func (p *postService) GetPost(postID uint) (*models.PostResponse, *apiError.Error) {
	post, err := p.postRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("post not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}
	resp := post.ToResponse()
	return &resp, nil
}

func (p *postService) UpdatePost(postID, userID uint, req *models.UpdatePostRequest) (*models.PostResponse, *apiError.Error) {
	post, err := p.postRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("post not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}

	if post.UserID != userID {
		return nil, apiError.New("you do not own this post", http.StatusForbidden)
	}

	fields := make([]string, 0, 4)
	if req.Title != nil {
		post.Title = *req.Title
		fields = append(fields, "title")
	}
	if req.Description != nil {
		post.Description = *req.Description
		fields = append(fields, "description")
	}
	if req.Status != nil {
		post.Status = *req.Status
		fields = append(fields, "status")
	}
	if req.Tags != nil {
		post.Tags = normalizeTags(*req.Tags)
		fields = append(fields, "tags")
	}
	if len(fields) == 0 {
		return nil, apiError.New("nothing to update", http.StatusBadRequest)
	}

	if err := p.postRepo.UpdatePost(post, fields); err != nil {
		log.Printf("UpdatePost error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	updated, err := p.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (p *postService) DeletePost(ctx context.Context, postID, userID uint) *apiError.Error {
	post, err := p.postRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("post not found", http.StatusNotFound)
		}
		return apiError.ErrInternalServerError
	}

	if post.UserID != userID {
		return apiError.New("you do not own this post", http.StatusForbidden)
	}

	if len(post.Images) > 0 {
		if err := p.mediaService.DeleteImages(ctx, post.Images); err != nil {
			log.Printf("DeletePost media cleanup error: %v", err)
			return apiError.New("failed to delete post media", http.StatusInternalServerError)
		}
	}

	if err := p.postRepo.DeletePost(post); err != nil {
		log.Printf("DeletePost error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
