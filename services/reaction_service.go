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

// ReactionState is what GET /reactions returns: live counts plus the
// caller's own reaction when a session is present.
type ReactionState struct {
	Counts       models.ReactionCounts `json:"counts"`
	UserReaction *string               `json:"userReaction"`
}

// ReactionService interface
type ReactionService interface {
	ToggleReaction(userID, postID uint, reactionType string) (*models.ToggleResult, *ReactionState, *apiError.Error)
	GetReactionState(postID uint, userID *uint) (*ReactionState, *apiError.Error)
}

// reactionService struct
type reactionService struct {
	Config       *config.Config
	reactionRepo db.ReactionRepository
	postRepo     db.PostRepository
}

// NewReactionService creates a new instance of ReactionService
func NewReactionService(reactionRepo db.ReactionRepository, postRepo db.PostRepository, conf *config.Config) ReactionService {
	return &reactionService{
		Config:       conf,
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
	}
}

func (s *reactionService) ToggleReaction(userID, postID uint, reactionType string) (*models.ToggleResult, *ReactionState, *apiError.Error) {
	if _, err := s.postRepo.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apiError.New("post not found", http.StatusNotFound)
		}
		return nil, nil, apiError.ErrInternalServerError
	}

	result, err := s.reactionRepo.ToggleReaction(userID, postID, reactionType)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apiError.New("a reaction already exists for this post", http.StatusConflict)
		}
		log.Printf("ToggleReaction error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}

	state, apiErr := s.GetReactionState(postID, &userID)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	return result, state, nil
}

func (s *reactionService) GetReactionState(postID uint, userID *uint) (*ReactionState, *apiError.Error) {
	counts, err := s.reactionRepo.GetReactionCounts(postID)
	if err != nil {
		log.Printf("GetReactionState error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	state := &ReactionState{Counts: counts}
	if userID != nil {
		reaction, err := s.reactionRepo.GetUserReaction(*userID, postID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("GetReactionState user reaction error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		if reaction != nil {
			state.UserReaction = &reaction.Type
		}
	}
	return state, nil
}
