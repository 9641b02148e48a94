package db

import (
	"log"

	"github.com/google/uuid"
	"github.com/lostconnect/backend/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ReactionRepository owns the reactions table and the denormalized
// per-type counters cached on posts.
type ReactionRepository interface {
	ToggleReaction(userID, postID uint, reactionType string) (*models.ToggleResult, error)
	GetUserReaction(userID, postID uint) (*models.Reaction, error)
	GetReactionCounts(postID uint) (models.ReactionCounts, error)
	RecountPostReactions(postID uint) (models.ReactionCounts, error)
}

type reactionRepo struct {
	DB *gorm.DB
}

func NewReactionRepo(db *GormDB) ReactionRepository {
	return &reactionRepo{db.DB}
}

// ToggleReaction walks the three transitions of the single-reaction state
// machine: no row -> create, same type -> remove, different type -> mutate
// the type in place on the same row. After the write it refreshes the
// post's cached counters with a full recount; a recount failure is logged
// and swallowed because the reaction row is authoritative and the cache
// self-corrects on the next toggle.
func (r *reactionRepo) ToggleReaction(userID, postID uint, reactionType string) (*models.ToggleResult, error) {
	existing, err := r.GetUserReaction(userID, postID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to look up reaction")
	}

	var result models.ToggleResult
	switch {
	case existing == nil:
		reaction := models.Reaction{
			ID:     uuid.New().String(),
			UserID: userID,
			PostID: postID,
			Type:   reactionType,
		}
		if err := r.DB.Create(&reaction).Error; err != nil {
			return nil, err
		}
		result = models.ToggleResult{Action: models.ReactionCreated, Type: reactionType}

	case existing.Type == reactionType:
		if err := r.DB.Delete(&models.Reaction{}, "id = ?", existing.ID).Error; err != nil {
			return nil, err
		}
		result = models.ToggleResult{Action: models.ReactionRemoved, Type: reactionType}

	default:
		err := r.DB.Model(&models.Reaction{}).Where("id = ?", existing.ID).
			UpdateColumn("type", reactionType).Error
		if err != nil {
			return nil, err
		}
		result = models.ToggleResult{
			Action:       models.ReactionUpdated,
			Type:         reactionType,
			PreviousType: existing.Type,
		}
	}

	if _, err := r.RecountPostReactions(postID); err != nil {
		log.Printf("reaction recount failed for post %d: %v", postID, err)
	}

	return &result, nil
}

func (r *reactionRepo) GetUserReaction(userID, postID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetReactionCounts aggregates live reaction rows per type. The post's
// cached counters are deliberately not consulted here.
func (r *reactionRepo) GetReactionCounts(postID uint) (models.ReactionCounts, error) {
	rows := []struct {
		Type  string
		Count int
	}{}
	err := r.DB.Model(&models.Reaction{}).
		Select("type, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return models.ReactionCounts{}, errors.Wrap(err, "failed to count reactions")
	}

	var counts models.ReactionCounts
	for _, row := range rows {
		switch row.Type {
		case models.ReactionLike:
			counts.Like = row.Count
		case models.ReactionHelpful:
			counts.Helpful = row.Count
		case models.ReactionFound:
			counts.Found = row.Count
		}
	}
	return counts, nil
}

// RecountPostReactions recomputes the counters from the reaction rows and
// overwrites the cached copy on the post. Idempotent, so concurrent
// toggles converge on the correct values.
func (r *reactionRepo) RecountPostReactions(postID uint) (models.ReactionCounts, error) {
	counts, err := r.GetReactionCounts(postID)
	if err != nil {
		return counts, err
	}

	err = r.DB.Model(&models.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"reactions_like":    counts.Like,
		"reactions_helpful": counts.Helpful,
		"reactions_found":   counts.Found,
	}).Error
	if err != nil {
		return counts, errors.Wrap(err, "failed to persist reaction counts")
	}
	return counts, nil
}
