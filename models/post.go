package models

// Post statuses and types accepted by the API.
const (
	PostTypeLost  = "lost"
	PostTypeFound = "found"

	PostStatusActive   = "active"
	PostStatusResolved = "resolved"
	PostStatusClosed   = "closed"
)

// ReactionCounts is the denormalized per-type reaction tally cached on a
// post. It is overwritten by a full recount after every toggle, never
// incremented in place.
type ReactionCounts struct {
	Like    int `json:"like" gorm:"default:0"`
	Helpful int `json:"helpful" gorm:"default:0"`
	Found   int `json:"found" gorm:"default:0"`
}

// Post represents a lost/found item report
type Post struct {
	Model
	UserID         uint           `json:"userId" gorm:"index;not null"`
	User           User           `json:"-" gorm:"foreignKey:UserID"`
	Type           string         `json:"type" gorm:"index;not null"`
	Title          string         `json:"title" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:varchar(2000);not null"`
	Category       string         `json:"category" gorm:"index;not null"`
	Images         []Image        `json:"images" gorm:"serializer:json"`
	Location       *Location      `json:"location,omitempty" gorm:"serializer:json"`
	Status         string         `json:"status" gorm:"index;default:active"`
	Tags           []string       `json:"tags" gorm:"serializer:json"`
	CommentsCount  int            `json:"commentsCount" gorm:"default:0"`
	ReactionsCount ReactionCounts `json:"reactionsCount" gorm:"embedded;embeddedPrefix:reactions_"`
}

// PostResponse is a post with its author populated.
type PostResponse struct {
	Post
	Author PublicUser `json:"author"`
}

func (p *Post) ToResponse() PostResponse {
	return PostResponse{Post: *p, Author: p.User.Public()}
}

// ImageInput is either an already uploaded image (url + publicId) or a
// base64 data URI still waiting to be uploaded.
type ImageInput struct {
	URL      string `json:"url,omitempty"`
	PublicID string `json:"publicId,omitempty"`
	Data     string `json:"data,omitempty"`
}

type CreatePostRequest struct {
	Type        string       `json:"type" binding:"required,oneof=lost found"`
	Title       string       `json:"title" binding:"required,min=5,max=100" conform:"trim"`
	Description string       `json:"description" binding:"required,min=20,max=2000" conform:"trim"`
	Category    string       `json:"category" binding:"required"`
	Images      []ImageInput `json:"images" binding:"required,min=1,max=5"`
	Location    *Location    `json:"location,omitempty"`
	Tags        []string     `json:"tags,omitempty" binding:"omitempty,max=10"`
}

// UpdatePostRequest carries the partial PATCH body. Category and images
// are immutable after creation, so they are not accepted here.
type UpdatePostRequest struct {
	Title       *string   `json:"title,omitempty" binding:"omitempty,min=5,max=100"`
	Description *string   `json:"description,omitempty" binding:"omitempty,min=20,max=2000"`
	Status      *string   `json:"status,omitempty" binding:"omitempty,oneof=active resolved closed"`
	Tags        *[]string `json:"tags,omitempty" binding:"omitempty,max=10"`
}

// FeedQuery are the query params accepted by GET /posts.
type FeedQuery struct {
	Limit  int    `form:"limit"`
	Cursor uint   `form:"cursor"`
	Type   string `form:"type" binding:"omitempty,oneof=lost found"`
	Status string `form:"status" binding:"omitempty,oneof=active resolved closed"`
	UserID uint   `form:"userId"`
}

// Pagination is the cursor envelope returned on every list endpoint.
type Pagination struct {
	HasMore    bool  `json:"hasMore"`
	NextCursor *uint `json:"nextCursor"`
}
