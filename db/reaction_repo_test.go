package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lostconnect/backend/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func TestToggleReactionCreateAndRemove(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReactionRepo(gdb)
	user := seedUser(t, gdb, "alice@example.com")
	post := seedPost(t, gdb, user.ID)

	result, err := repo.ToggleReaction(user.ID, post.ID, models.ReactionLike)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if result.Action != models.ReactionCreated || result.Type != models.ReactionLike {
		t.Fatalf("expected created/like, got %+v", result)
	}

	counts, err := repo.GetReactionCounts(post.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Like != 1 || counts.Helpful != 0 || counts.Found != 0 {
		t.Fatalf("unexpected counts after create: %+v", counts)
	}

	// Same type again removes the reaction.
	result, err = repo.ToggleReaction(user.ID, post.ID, models.ReactionLike)
	if err != nil {
		t.Fatalf("toggle remove: %v", err)
	}
	if result.Action != models.ReactionRemoved {
		t.Fatalf("expected removed, got %+v", result)
	}

	counts, err = repo.GetReactionCounts(post.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Like != 0 {
		t.Fatalf("expected zero likes after removal, got %+v", counts)
	}

	if _, err := repo.GetUserReaction(user.ID, post.ID); err == nil {
		t.Fatalf("expected no reaction row after removal")
	}
}

func TestToggleReactionSwitchType(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReactionRepo(gdb)
	user := seedUser(t, gdb, "bob@example.com")
	post := seedPost(t, gdb, user.ID)

	if _, err := repo.ToggleReaction(user.ID, post.ID, models.ReactionLike); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	result, err := repo.ToggleReaction(user.ID, post.ID, models.ReactionHelpful)
	if err != nil {
		t.Fatalf("toggle switch: %v", err)
	}
	if result.Action != models.ReactionUpdated {
		t.Fatalf("expected updated, got %+v", result)
	}
	if result.PreviousType != models.ReactionLike || result.Type != models.ReactionHelpful {
		t.Fatalf("unexpected transition: %+v", result)
	}

	// The switch mutates the row in place; total row count stays one.
	var rowCount int64
	if err := gdb.DB.Model(&models.Reaction{}).Where("user_id = ? AND post_id = ?", user.ID, post.ID).Count(&rowCount).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rowCount != 1 {
		t.Fatalf("expected exactly one reaction row, got %d", rowCount)
	}

	counts, err := repo.GetReactionCounts(post.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Like != 0 || counts.Helpful != 1 {
		t.Fatalf("unexpected counts after switch: %+v", counts)
	}
}

func TestDuplicateReactionRowTranslated(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReactionRepo(gdb)
	user := seedUser(t, gdb, "alice@example.com")
	post := seedPost(t, gdb, user.ID)

	if _, err := repo.ToggleReaction(user.ID, post.ID, models.ReactionLike); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// A concurrent toggle racing past the lookup would insert a second
	// row for the same (user, post); the unique index must reject it as
	// a translated duplicate-key error.
	err := gdb.DB.Create(&models.Reaction{
		ID:     uuid.New().String(),
		UserID: user.ID,
		PostID: post.ID,
		Type:   models.ReactionHelpful,
	}).Error
	if err == nil {
		t.Fatalf("expected unique violation")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestRecountMatchesCachedCounters(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReactionRepo(gdb)
	post := seedPost(t, gdb, seedUser(t, gdb, "owner@example.com").ID)

	types := []string{models.ReactionLike, models.ReactionLike, models.ReactionHelpful, models.ReactionFound}
	for i, reactionType := range types {
		user := seedUser(t, gdb, string(rune('a'+i))+"@example.com")
		if _, err := repo.ToggleReaction(user.ID, post.ID, reactionType); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}

	var stored models.Post
	if err := gdb.DB.First(&stored, post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}

	live, err := repo.GetReactionCounts(post.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if stored.ReactionsCount != live {
		t.Fatalf("cached %+v diverges from live %+v", stored.ReactionsCount, live)
	}
	if live.Like != 2 || live.Helpful != 1 || live.Found != 1 {
		t.Fatalf("unexpected live counts: %+v", live)
	}
}
