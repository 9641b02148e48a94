package services

import (
	"context"
	"log"
	"net/http"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	apiError "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const commentImagesFolder = "lostconnect/comments"

// CommentService interface
type CommentService interface {
	CreateComment(ctx context.Context, userID uint, req *models.CreateCommentRequest) (*models.CommentResponse, *apiError.Error)
	ListComments(query models.CommentListQuery) ([]models.CommentResponse, models.Pagination, *apiError.Error)
	DeleteComment(ctx context.Context, commentID, userID uint) *apiError.Error
}

// commentService struct
type commentService struct {
	Config       *config.Config
	commentRepo  db.CommentRepository
	postRepo     db.PostRepository
	mediaService MediaService
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(commentRepo db.CommentRepository, postRepo db.PostRepository, mediaService MediaService, conf *config.Config) CommentService {
	return &commentService{
		Config:       conf,
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		mediaService: mediaService,
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID uint, req *models.CreateCommentRequest) (*models.CommentResponse, *apiError.Error) {
	if _, err := s.postRepo.GetPostByID(req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("post not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}

	// A reply must target a root comment on the same post. Replies to
	// replies are rejected to keep the thread two levels deep.
	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.GetCommentByID(*req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.New("parent comment not found", http.StatusNotFound)
			}
			return nil, apiError.ErrInternalServerError
		}
		if parent.PostID != req.PostID || parent.IsReply() {
			return nil, apiError.New("parent comment not found", http.StatusNotFound)
		}
	}

	images, err := s.mediaService.UploadDataURIBatch(ctx, req.Images, commentImagesFolder)
	if err != nil {
		log.Printf("CreateComment image upload failed: %v", err)
		return nil, apiError.New("failed to upload images", http.StatusInternalServerError)
	}

	comment := &models.Comment{
		PostID:          req.PostID,
		UserID:          userID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
		ReplyToUserID:   req.ReplyToUserID,
		Images:          images,
		Location:        req.Location,
	}

	if err := s.commentRepo.CreateComment(comment); err != nil {
		log.Printf("CreateComment error: %v", err)
		if cleanupErr := s.mediaService.DeleteImages(ctx, images); cleanupErr != nil {
			log.Printf("failed to clean up images after comment create failure: %v", cleanupErr)
		}
		return nil, apiError.ErrInternalServerError
	}

	resp := comment.ToResponse()
	return &resp, nil
}

func (s *commentService) ListComments(query models.CommentListQuery) ([]models.CommentResponse, models.Pagination, *apiError.Error) {
	if query.Limit < 1 {
		query.Limit = 20
	}
	if query.Limit > 50 {
		query.Limit = 50
	}

	comments, hasMore, err := s.commentRepo.ListComments(query)
	if err != nil {
		log.Printf("ListComments error: %v", err)
		return nil, models.Pagination{}, apiError.ErrInternalServerError
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse())
	}

	pagination := models.Pagination{HasMore: hasMore}
	if hasMore && len(comments) > 0 {
		cursor := comments[len(comments)-1].ID
		pagination.NextCursor = &cursor
	}
	return responses, pagination, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, userID uint) *apiError.Error {
	comment, err := s.commentRepo.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("comment not found", http.StatusNotFound)
		}
		return apiError.ErrInternalServerError
	}

	if comment.UserID != userID {
		return apiError.New("you do not own this comment", http.StatusForbidden)
	}

	// Root comments keep their replies; the thread must be emptied
	// bottom-up before the root can go.
	if !comment.IsReply() && comment.RepliesCount > 0 {
		return apiError.New("cannot delete a comment that has replies", http.StatusBadRequest)
	}

	if len(comment.Images) > 0 {
		if err := s.mediaService.DeleteImages(ctx, comment.Images); err != nil {
			log.Printf("DeleteComment media cleanup error: %v", err)
			return apiError.New("failed to delete comment media", http.StatusInternalServerError)
		}
	}

	if err := s.commentRepo.DeleteComment(comment); err != nil {
		log.Printf("DeleteComment error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
