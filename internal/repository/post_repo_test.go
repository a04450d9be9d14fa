package repository

import (
	"testing"

	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, title, status string, pinned, archived bool) *domain.Post {
	t.Helper()
	post := &domain.Post{
		AuthorID:   1,
		AuthorName: "author",
		Title:      title,
		Content:    "content of " + title,
		Status:     status,
		IsPinned:   pinned,
		IsArchived: archived,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func TestPostRepositoryListPublic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	seedPost(t, db, "plain", domain.StatusApproved, false, false)
	pinned := seedPost(t, db, "pinned", domain.StatusApproved, true, false)
	seedPost(t, db, "archived", domain.StatusApproved, false, true)
	seedPost(t, db, "pending", domain.StatusPending, false, false)
	seedPost(t, db, "rejected", domain.StatusRejected, false, false)

	posts, total, err := repo.ListPublic(ListQuery{})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if total != 2 || len(posts) != 2 {
		t.Fatalf("public listing: total %d len %d, want 2 and 2", total, len(posts))
	}
	if posts[0].ID != pinned.ID {
		t.Errorf("expected pinned post first, got %q", posts[0].Title)
	}
	for _, p := range posts {
		if p.Status != domain.StatusApproved || p.IsArchived {
			t.Errorf("public listing leaked post %q (status %s, archived %v)", p.Title, p.Status, p.IsArchived)
		}
	}
}

func TestPostRepositoryModerateFlags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	post := seedPost(t, db, "target", domain.StatusApproved, false, false)

	updated, err := repo.Moderate(post.ID, domain.ActionPin.Updates())
	if err != nil {
		t.Fatalf("Moderate pin failed: %v", err)
	}
	if !updated.IsPinned {
		t.Error("pin did not set is_pinned")
	}
	if updated.Status != domain.StatusApproved {
		t.Errorf("pin changed status to %q", updated.Status)
	}

	updated, err = repo.Moderate(post.ID, domain.ActionArchive.Updates())
	if err != nil {
		t.Fatalf("Moderate archive failed: %v", err)
	}
	if !updated.IsArchived {
		t.Error("archive did not set is_archived")
	}
	if !updated.IsPinned {
		t.Error("archive cleared the independent is_pinned flag")
	}
}

func TestPostRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	post := seedPost(t, db, "doomed", domain.StatusApproved, false, false)

	if err := repo.Delete(post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(post.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("FindByID after delete = %v, want gorm.ErrRecordNotFound", err)
	}
	if err := repo.Delete(post.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("second Delete = %v, want gorm.ErrRecordNotFound", err)
	}
}
