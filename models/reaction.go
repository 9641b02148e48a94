package models

import "time"

// Reaction types. A user holds at most one reaction per post, of exactly
// one of these types.
const (
	ReactionLike    = "like"
	ReactionHelpful = "helpful"
	ReactionFound   = "found"
)

// Toggle outcomes.
const (
	ReactionCreated = "created"
	ReactionUpdated = "updated"
	ReactionRemoved = "removed"
)

// Reaction represents a user's reaction on a post. The (user, post) pair
// is unique at the storage layer; toggling to a different type mutates
// the row in place instead of replacing it. No update timestamp is kept.
type Reaction struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_reactions_user_post;not null"`
	PostID    uint      `json:"postId" gorm:"uniqueIndex:idx_reactions_user_post;not null"`
	Type      string    `json:"type" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggleResult reports which transition a toggle performed.
type ToggleResult struct {
	Action       string `json:"action"`
	Type         string `json:"type,omitempty"`
	PreviousType string `json:"previousType,omitempty"`
}

type ToggleReactionRequest struct {
	PostID uint   `json:"postId" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=like helpful found"`
}
