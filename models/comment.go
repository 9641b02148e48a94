package models

// Comment is either a root comment on a post (ParentCommentID nil) or a
// single-level reply. Replies never nest further.
type Comment struct {
	Model
	PostID          uint      `json:"postId" gorm:"index:idx_comments_post_parent;not null"`
	UserID          uint      `json:"userId" gorm:"index;not null"`
	User            User      `json:"-" gorm:"foreignKey:UserID"`
	Content         string    `json:"content" gorm:"type:varchar(2000);not null"`
	ParentCommentID *uint     `json:"parentCommentId,omitempty" gorm:"index:idx_comments_post_parent"`
	ReplyToUserID   *uint     `json:"replyToUserId,omitempty"`
	ReplyToUser     *User     `json:"-" gorm:"foreignKey:ReplyToUserID"`
	Images          []Image   `json:"images,omitempty" gorm:"serializer:json"`
	Location        *Location `json:"location,omitempty" gorm:"serializer:json"`
	RepliesCount    int       `json:"repliesCount" gorm:"default:0"`
}

func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}

// CommentResponse is a comment with its author (and the replied-to user,
// if any) populated.
type CommentResponse struct {
	Comment
	Author     PublicUser  `json:"author"`
	ReplyingTo *PublicUser `json:"replyingTo,omitempty"`
}

func (c *Comment) ToResponse() CommentResponse {
	resp := CommentResponse{Comment: *c, Author: c.User.Public()}
	if c.ReplyToUser != nil {
		replyTo := c.ReplyToUser.Public()
		replyTo.Email = ""
		resp.ReplyingTo = &replyTo
	}
	return resp
}

type CreateCommentRequest struct {
	PostID          uint      `json:"postId" binding:"required"`
	Content         string    `json:"content" binding:"required,max=2000" conform:"trim"`
	ParentCommentID *uint     `json:"parentCommentId,omitempty"`
	ReplyToUserID   *uint     `json:"replyToUserId,omitempty"`
	Images          []string  `json:"images,omitempty" binding:"omitempty,max=3"`
	Location        *Location `json:"location,omitempty"`
}

// CommentListQuery are the query params accepted by GET /comments.
type CommentListQuery struct {
	PostID          uint `form:"postId" binding:"required"`
	ParentCommentID uint `form:"parentCommentId"`
	Limit           int  `form:"limit"`
	Cursor          uint `form:"cursor"`
}
