package db

import (
	"testing"

	"github.com/lostconnect/backend/models"
)

func TestGetPostsPaginationWalk(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPostRepo(gdb)
	user := seedUser(t, gdb, "alice@example.com")
	seedPosts(t, gdb, user.ID, 25)

	seen := make(map[uint]bool)
	var cursor uint
	pageSizes := []int{}

	for {
		posts, hasMore, err := repo.GetPosts(models.FeedQuery{
			Limit:  10,
			Cursor: cursor,
			Status: models.PostStatusActive,
		})
		if err != nil {
			t.Fatalf("page: %v", err)
		}
		pageSizes = append(pageSizes, len(posts))

		var prev uint
		for _, p := range posts {
			if seen[p.ID] {
				t.Fatalf("post %d returned twice", p.ID)
			}
			seen[p.ID] = true
			if prev != 0 && p.ID >= prev {
				t.Fatalf("ids not strictly decreasing: %d then %d", prev, p.ID)
			}
			prev = p.ID
		}

		if !hasMore {
			break
		}
		cursor = posts[len(posts)-1].ID
	}

	if len(seen) != 25 {
		t.Fatalf("expected all 25 posts exactly once, got %d", len(seen))
	}
	if len(pageSizes) != 3 || pageSizes[0] != 10 || pageSizes[1] != 10 || pageSizes[2] != 5 {
		t.Fatalf("unexpected page sizes: %v", pageSizes)
	}
}

func TestGetPostsFilters(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPostRepo(gdb)
	alice := seedUser(t, gdb, "alice@example.com")
	bob := seedUser(t, gdb, "bob@example.com")

	lost := seedPost(t, gdb, alice.ID)
	found := &models.Post{
		UserID:      bob.ID,
		Type:        models.PostTypeFound,
		Title:       "Found a set of keys",
		Description: "Found a set of keys on a bench by the library entrance today.",
		Category:    "keys",
		Status:      models.PostStatusActive,
	}
	if err := gdb.DB.Create(found).Error; err != nil {
		t.Fatalf("seed found post: %v", err)
	}
	resolved := seedPost(t, gdb, alice.ID)
	resolved.Status = models.PostStatusResolved
	if err := repo.UpdatePost(resolved, []string{"status"}); err != nil {
		t.Fatalf("resolve post: %v", err)
	}

	posts, _, err := repo.GetPosts(models.FeedQuery{Limit: 10, Status: models.PostStatusActive, Type: models.PostTypeFound})
	if err != nil {
		t.Fatalf("filter by type: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != found.ID {
		t.Fatalf("type filter returned wrong posts: %v", posts)
	}

	posts, _, err = repo.GetPosts(models.FeedQuery{Limit: 10, Status: models.PostStatusActive, UserID: alice.ID})
	if err != nil {
		t.Fatalf("filter by user: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != lost.ID {
		t.Fatalf("user filter returned wrong posts: %v", posts)
	}

	posts, _, err = repo.GetPosts(models.FeedQuery{Limit: 10, Status: models.PostStatusResolved})
	if err != nil {
		t.Fatalf("filter by status: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != resolved.ID {
		t.Fatalf("status filter returned wrong posts: %v", posts)
	}
}

func TestDeletePostCascades(t *testing.T) {
	gdb := setupTestDB(t)
	postRepo := NewPostRepo(gdb)
	commentRepo := NewCommentRepo(gdb)
	reactionRepo := NewReactionRepo(gdb)
	user := seedUser(t, gdb, "alice@example.com")
	post := seedPost(t, gdb, user.ID)

	comment := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "a comment"}
	if err := commentRepo.CreateComment(comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := reactionRepo.ToggleReaction(user.ID, post.ID, models.ReactionLike); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := postRepo.DeletePost(post); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	var comments, reactions int64
	gdb.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	gdb.DB.Model(&models.Reaction{}).Where("post_id = ?", post.ID).Count(&reactions)
	if comments != 0 || reactions != 0 {
		t.Fatalf("cascade left %d comments, %d reactions", comments, reactions)
	}
	if _, err := postRepo.GetPostByID(post.ID); err == nil {
		t.Fatalf("expected post gone")
	}
}
