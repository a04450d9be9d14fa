package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Application{},
		&domain.Post{},
		&domain.Project{},
		&domain.Claim{},
		&domain.ChatMessage{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedClaim(t *testing.T, db *gorm.DB, name, status string) *domain.Claim {
	t.Helper()
	claim := &domain.Claim{
		Reference:     fmt.Sprintf("ref-%s-%d", name, time.Now().UnixNano()),
		ClaimantName:  name,
		ClaimantEmail: name + "@example.com",
		Amount:        100,
		Status:        status,
	}
	if err := db.Create(claim).Error; err != nil {
		t.Fatalf("failed to seed claim: %v", err)
	}
	return claim
}

func TestClaimRepositoryModerate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	claim := seedClaim(t, db, "alice", domain.StatusPending)

	now := time.Now()
	updated, err := repo.Moderate(claim.ID, map[string]interface{}{
		"status":         domain.StatusApproved,
		"reviewed_at":    &now,
		"reviewed_by":    "admin",
		"reviewer_notes": "looks good",
	})
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if updated.Status != domain.StatusApproved {
		t.Errorf("status = %q, want %q", updated.Status, domain.StatusApproved)
	}
	if updated.ReviewedBy != "admin" || updated.ReviewedAt == nil {
		t.Error("audit fields were not written")
	}
	if updated.ReviewerNotes != "looks good" {
		t.Errorf("reviewer_notes = %q, want %q", updated.ReviewerNotes, "looks good")
	}
}

func TestClaimRepositoryModerateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	_, err := repo.Moderate(9999, map[string]interface{}{"status": domain.StatusApproved})
	if err != gorm.ErrRecordNotFound {
		t.Errorf("Moderate on missing id = %v, want gorm.ErrRecordNotFound", err)
	}
}

// Re-applying the same action is an overwrite, not an error: the update
// touches zero rows but the claim still exists, so it must succeed.
func TestClaimRepositoryModerateIdempotentValues(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	claim := seedClaim(t, db, "bob", domain.StatusApproved)

	updated, err := repo.Moderate(claim.ID, map[string]interface{}{"status": domain.StatusApproved})
	if err != nil {
		t.Fatalf("Moderate with unchanged values failed: %v", err)
	}
	if updated.Status != domain.StatusApproved {
		t.Errorf("status = %q, want %q", updated.Status, domain.StatusApproved)
	}
}

func TestClaimRepositoryListPendingOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	old := seedClaim(t, db, "first", domain.StatusPending)
	db.Model(old).Update("created_at", time.Now().Add(-2*time.Hour))
	seedClaim(t, db, "second", domain.StatusPending)
	seedClaim(t, db, "done", domain.StatusApproved)

	pending, err := repo.ListPending()
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending claims, got %d", len(pending))
	}
	if pending[0].ClaimantName != "first" {
		t.Errorf("expected oldest claim first, got %q", pending[0].ClaimantName)
	}
}

func TestClaimRepositoryBulkUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	a := seedClaim(t, db, "a", domain.StatusPending)
	b := seedClaim(t, db, "b", domain.StatusPending)

	// 9999 does not exist and must be silently skipped
	affected, err := repo.BulkUpdateStatus([]uint{a.ID, b.ID, 9999}, domain.StatusApproved, "", "admin")
	if err != nil {
		t.Fatalf("BulkUpdateStatus failed: %v", err)
	}
	if affected != 2 {
		t.Errorf("affected = %d, want 2", affected)
	}

	for _, id := range []uint{a.ID, b.ID} {
		claim, err := repo.FindByID(id)
		if err != nil {
			t.Fatalf("FindByID(%d) failed: %v", id, err)
		}
		if claim.Status != domain.StatusApproved {
			t.Errorf("claim %d status = %q, want %q", id, claim.Status, domain.StatusApproved)
		}
		if claim.ReviewedAt == nil || claim.ReviewedBy != "admin" {
			t.Errorf("claim %d audit fields were not written", id)
		}
	}
}

func TestClaimRepositoryBulkUpdateStatusEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	affected, err := repo.BulkUpdateStatus(nil, domain.StatusApproved, "", "admin")
	if err != nil {
		t.Fatalf("BulkUpdateStatus with no ids failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
}

func TestClaimRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	seedClaim(t, db, "alice", domain.StatusPending)
	seedClaim(t, db, "bob", domain.StatusPending)
	seedClaim(t, db, "carol", domain.StatusApproved)

	claims, total, err := repo.List(ListQuery{Status: domain.StatusPending})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 || len(claims) != 2 {
		t.Errorf("pending filter: total %d len %d, want 2 and 2", total, len(claims))
	}

	claims, total, err = repo.List(ListQuery{Search: "alice"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(claims) != 1 || claims[0].ClaimantName != "alice" {
		t.Errorf("search filter returned wrong rows: total %d", total)
	}
}

// Walking pages until exhaustion must visit every row exactly once.
func TestClaimRepositoryListPaginationExhaustive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClaimRepository(db)

	for i := 0; i < 7; i++ {
		seedClaim(t, db, fmt.Sprintf("claimant%d", i), domain.StatusPending)
	}

	seen := map[uint]bool{}
	for page := 1; ; page++ {
		claims, total, err := repo.List(ListQuery{Page: page, Limit: 3})
		if err != nil {
			t.Fatalf("List page %d failed: %v", page, err)
		}
		if total != 7 {
			t.Fatalf("total = %d, want 7", total)
		}
		if len(claims) == 0 {
			break
		}
		for _, c := range claims {
			if seen[c.ID] {
				t.Errorf("claim %d returned twice", c.ID)
			}
			seen[c.ID] = true
		}
	}
	if len(seen) != 7 {
		t.Errorf("visited %d claims across pages, want 7", len(seen))
	}
}
