package db

import (
	"github.com/lostconnect/backend/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostRepository owns the posts table and the cursor-paginated feed query.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(query models.FeedQuery) ([]models.Post, bool, error)
	UpdatePost(post *models.Post, fields []string) error
	DeletePost(post *models.Post) error
}

type postRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *GormDB) PostRepository {
	return &postRepo{db.DB}
}

func (r *postRepo) CreatePost(post *models.Post) error {
	if err := r.DB.Create(post).Error; err != nil {
		return err
	}
	return r.DB.Preload("User").First(post, post.ID).Error
}

func (r *postRepo) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.DB.Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts returns newest-first posts strictly older than the cursor.
// It fetches limit+1 rows to detect whether another page exists without
// a separate count query.
func (r *postRepo) GetPosts(query models.FeedQuery) ([]models.Post, bool, error) {
	q := r.DB.Preload("User").Where("status = ?", query.Status)
	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}
	if query.UserID != 0 {
		q = q.Where("user_id = ?", query.UserID)
	}
	if query.Cursor != 0 {
		q = q.Where("id < ?", query.Cursor)
	}

	var posts []models.Post
	if err := q.Order("id DESC").Limit(query.Limit + 1).Find(&posts).Error; err != nil {
		return nil, false, errors.Wrap(err, "failed to query feed")
	}

	hasMore := len(posts) > query.Limit
	if hasMore {
		posts = posts[:query.Limit]
	}
	return posts, hasMore, nil
}

// UpdatePost writes the named fields from the struct. Struct-based
// Updates keeps serialized columns (tags, images, location) going
// through their serializers; Select forces the write even when a
// selected field holds its zero value.
func (r *postRepo) UpdatePost(post *models.Post, fields []string) error {
	return r.DB.Model(post).Select(fields).Updates(post).Error
}

// DeletePost removes the post together with its comments and reactions.
// Orphaned comment/reaction rows would otherwise reference a dead post.
func (r *postRepo) DeletePost(post *models.Post) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}
