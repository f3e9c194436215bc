package postingstore_test

import (
	"errors"
	"testing"
	"time"

	postingstore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/postings"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)

	created, err := store.Create(ctx, models.Posting{
		Title:          "  Smart India Hackathon  ",
		Description:    "National level hackathon",
		Link:           "https://sih.example.test",
		Domain:         "web",
		IsActive:       true,
		ApprovalStatus: models.ApprovalApproved,
		Source:         models.SourceManual,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Smart India Hackathon" {
		t.Errorf("title not trimmed: %q", created.Title)
	}
	if created.TitleCI != "smart india hackathon" {
		t.Errorf("title_ci: got %q", created.TitleCI)
	}
	if created.ID.IsZero() {
		t.Error("inserted ID not set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != created.Title {
		t.Errorf("round trip title: got %q", got.Title)
	}

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, postingstore.ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestListOrderingAndVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)

	soon := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Millisecond)
	later := soon.Add(72 * time.Hour)

	mustCreate := func(title string, deadline *time.Time, status models.ApprovalStatus, active bool) models.Posting {
		t.Helper()
		p, err := store.Create(ctx, models.Posting{
			Title:          title,
			Link:           "https://" + title + ".test",
			Deadline:       deadline,
			IsActive:       active,
			ApprovalStatus: status,
			Source:         models.SourceManual,
		})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		return p
	}

	mustCreate("later", &later, models.ApprovalApproved, true)
	mustCreate("soon", &soon, models.ApprovalApproved, true)
	mustCreate("pending", &soon, models.ApprovalPending, true)
	mustCreate("inactive", &soon, models.ApprovalApproved, false)
	mustCreate("rejected", &soon, models.ApprovalRejected, false)

	visible, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("list visible: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("visible: got %d postings, want 2", len(visible))
	}
	if visible[0].Title != "soon" || visible[1].Title != "later" {
		t.Errorf("deadline ordering: got %q then %q", visible[0].Title, visible[1].Title)
	}

	// Review view: approved regardless of active flag, plus the pending
	// queue. Rejected postings stay out of every listing.
	review, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("list review: %v", err)
	}
	if len(review) != 4 {
		t.Errorf("review: got %d postings, want 4", len(review))
	}
	for _, p := range review {
		if p.ApprovalStatus == models.ApprovalRejected {
			t.Errorf("review view includes rejected posting %q", p.Title)
		}
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	p := fx.CreatePosting(ctx, "To Delete", "https://del.test", models.ApprovalApproved)
	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, p.ID); !errors.Is(err, postingstore.ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}

func TestFindByLinkOrTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	fx.CreatePosting(ctx, "CodeFest 2026", "https://codefest.test", models.ApprovalRejected)

	byLink, err := store.FindByLinkOrTitle(ctx, "https://codefest.test", "different title")
	if err != nil {
		t.Fatalf("by link: %v", err)
	}
	if byLink == nil {
		t.Fatal("expected match by link")
	}
	if byLink.ApprovalStatus != models.ApprovalRejected {
		t.Errorf("status: got %q", byLink.ApprovalStatus)
	}

	byTitle, err := store.FindByLinkOrTitle(ctx, "https://other.test", "  CODEFEST 2026 ")
	if err != nil {
		t.Fatalf("by title: %v", err)
	}
	if byTitle == nil {
		t.Fatal("expected case-insensitive match by title")
	}

	none, err := store.FindByLinkOrTitle(ctx, "https://new.test", "Brand New Event")
	if err != nil {
		t.Fatalf("no match: %v", err)
	}
	if none != nil {
		t.Errorf("expected no match, got %+v", none)
	}
}

func TestDecide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	p := fx.CreatePosting(ctx, "Pending Event", "https://pend.test", models.ApprovalPending)

	decided, err := store.Decide(ctx, p.ID, models.ApprovalApproved, "HOD1", "looks legit")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.ApprovalStatus != models.ApprovalApproved {
		t.Errorf("status: got %q", decided.ApprovalStatus)
	}
	if decided.ApprovedBy != "HOD1" || decided.ReviewNote != "looks legit" {
		t.Errorf("review fields: %+v", decided)
	}
	if !decided.IsActive {
		t.Error("approved posting should be active")
	}

	if _, err := store.Decide(ctx, p.ID, models.ApprovalRejected, "HOD2", ""); !errors.Is(err, postingstore.ErrNotPending) {
		t.Errorf("second decision: got %v, want ErrNotPending", err)
	}

	if _, err := store.Decide(ctx, primitive.NewObjectID(), models.ApprovalApproved, "HOD1", ""); !errors.Is(err, postingstore.ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestDecideEmptyNoteNotStored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := postingstore.New(db)
	fx := testutil.NewFixtures(t, db)

	p := fx.CreatePosting(ctx, "No Note", "https://nonote.test", models.ApprovalPending)

	if _, err := store.Decide(ctx, p.ID, models.ApprovalApproved, "HOD1", ""); err != nil {
		t.Fatalf("decide: %v", err)
	}

	var doc bson.M
	if err := db.Collection("hackathons").FindOne(ctx, bson.M{"_id": p.ID}).Decode(&doc); err != nil {
		t.Fatalf("load document: %v", err)
	}
	if _, present := doc["review_note"]; present {
		t.Error("review_note field written for an empty note")
	}
}
