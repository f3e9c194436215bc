package registrationstore_test

import (
	"errors"
	"testing"

	registrationstore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/registrations"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/indexes"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	store := registrationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	posting := fx.CreatePosting(ctx, "Reg Event", "https://reg.test", models.ApprovalApproved)

	created, err := store.Create(ctx, models.Registration{
		HackathonID:      posting.ID,
		StudentCollegeID: "S1",
		LinkSubmission:   "https://github.test/s1/project",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.RegistrationApplied {
		t.Errorf("status: got %q, want applied", created.Status)
	}
	if created.ID.IsZero() {
		t.Error("inserted ID not set")
	}

	_, err = store.Create(ctx, models.Registration{HackathonID: posting.ID, StudentCollegeID: "S1"})
	if !errors.Is(err, registrationstore.ErrDuplicateRegistration) {
		t.Errorf("duplicate: got %v, want ErrDuplicateRegistration", err)
	}

	// Same student, different posting is fine.
	other := fx.CreatePosting(ctx, "Other Event", "https://other.test", models.ApprovalApproved)
	if _, err := store.Create(ctx, models.Registration{HackathonID: other.ID, StudentCollegeID: "S1"}); err != nil {
		t.Errorf("second posting: %v", err)
	}
}

func TestListByPosting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := registrationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	p1 := fx.CreatePosting(ctx, "P1", "https://p1.test", models.ApprovalApproved)
	p2 := fx.CreatePosting(ctx, "P2", "https://p2.test", models.ApprovalApproved)
	fx.CreateRegistration(ctx, p1.ID, "S1")
	fx.CreateRegistration(ctx, p1.ID, "S2")
	fx.CreateRegistration(ctx, p2.ID, "S1")

	got, err := store.ListByPosting(ctx, p1.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("list p1: got %d, want 2", len(got))
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("list all: got %d, want 3", len(all))
	}
}

func TestAcknowledge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := registrationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	p := fx.CreatePosting(ctx, "Ack Event", "https://ack.test", models.ApprovalApproved)
	reg := fx.CreateRegistration(ctx, p.ID, "S1")

	acked, err := store.Acknowledge(ctx, reg.ID, models.RegistrationAcknowledged, "T1", "good fit")
	if err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if acked.Status != models.RegistrationAcknowledged || acked.AcknowledgedBy != "T1" || acked.Notes != "good fit" {
		t.Errorf("acknowledged fields: %+v", acked)
	}

	// Decisions are revisable.
	revised, err := store.Acknowledge(ctx, reg.ID, models.RegistrationRejected, "T2", "team withdrew")
	if err != nil {
		t.Fatalf("revise: %v", err)
	}
	if revised.Status != models.RegistrationRejected {
		t.Errorf("revised status: got %q", revised.Status)
	}

	if _, err := store.Acknowledge(ctx, primitive.NewObjectID(), models.RegistrationAcknowledged, "T1", ""); !errors.Is(err, registrationstore.ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}
