package db

import (
	"github.com/lostconnect/backend/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CommentRepository owns the comments table. Creation and deletion run in
// a transaction with the counter they maintain: commentsCount on the post
// for root comments, repliesCount on the parent for replies.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListComments(query models.CommentListQuery) ([]models.Comment, bool, error)
	DeleteComment(comment *models.Comment) error
}

type commentRepo struct {
	DB *gorm.DB
}

func NewCommentRepo(db *GormDB) CommentRepository {
	return &commentRepo{db.DB}
}

func (r *commentRepo) CreateComment(comment *models.Comment) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if comment.IsReply() {
			return tx.Model(&models.Comment{}).Where("id = ?", *comment.ParentCommentID).
				UpdateColumn("replies_count", gorm.Expr("replies_count + ?", 1)).Error
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
	if err != nil {
		return errors.Wrap(err, "failed to create comment")
	}
	return r.DB.Preload("User").Preload("ReplyToUser").First(comment, comment.ID).Error
}

func (r *commentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.Preload("User").Preload("ReplyToUser").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns root comments when ParentCommentID is zero, or the
// replies to that comment otherwise. Same limit+1 cursor scheme as the feed.
func (r *commentRepo) ListComments(query models.CommentListQuery) ([]models.Comment, bool, error) {
	q := r.DB.Preload("User").Preload("ReplyToUser").Where("post_id = ?", query.PostID)
	if query.ParentCommentID != 0 {
		q = q.Where("parent_comment_id = ?", query.ParentCommentID)
	} else {
		q = q.Where("parent_comment_id IS NULL")
	}
	if query.Cursor != 0 {
		q = q.Where("id < ?", query.Cursor)
	}

	var comments []models.Comment
	if err := q.Order("id DESC").Limit(query.Limit + 1).Find(&comments).Error; err != nil {
		return nil, false, errors.Wrap(err, "failed to query comments")
	}

	hasMore := len(comments) > query.Limit
	if hasMore {
		comments = comments[:query.Limit]
	}
	return comments, hasMore, nil
}

// DeleteComment removes the row and decrements whichever counter the
// comment was feeding. The reply guard lives in the service layer; by the
// time this runs the comment is known to be deletable.
func (r *commentRepo) DeleteComment(comment *models.Comment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, comment.ID).Error; err != nil {
			return err
		}
		if comment.IsReply() {
			return tx.Model(&models.Comment{}).Where("id = ?", *comment.ParentCommentID).
				UpdateColumn("replies_count", gorm.Expr("replies_count - ?", 1)).Error
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - ?", 1)).Error
	})
}
