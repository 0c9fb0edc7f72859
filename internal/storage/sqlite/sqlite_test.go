package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tripmoa/tripledger/internal/models"
)

var testRoster = models.Roster{"ME", "J", "K", "M"}

func newTestDB(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tripledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"), testRoster)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestEntriesRoundTrip(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	receipt := "hotel.pdf"
	entries := []models.ExpenseEntry{
		{
			ID: 100, Date: "2026-08-14", Title: "bus", Cost: 3000,
			Category: "transport", Payer: "J", Method: "cash",
			Involved: []models.Member{"J", "K"},
		},
		{
			ID: 200, Date: "2026-08-15", Title: "hotel", Cost: 180000,
			Category: "lodging", Payer: "ME", Method: "card",
			Involved: []models.Member(testRoster), Receipt: &receipt,
		},
	}

	if err := store.Save(ctx, entries); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, entries) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded, entries)
	}

	t.Run("save replaces the whole collection", func(t *testing.T) {
		if err := store.Save(ctx, entries[:1]); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != 1 || loaded[0].ID != 100 {
			t.Errorf("got %+v, want only entry 100", loaded)
		}
	})
}

func TestLoadDropsMalformedRecords(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	good := models.ExpenseEntry{
		ID: 300, Date: "2026-08-16", Title: "coffee", Cost: 9000,
		Category: "food", Payer: "M", Involved: []models.Member{"M"},
	}
	if err := store.Save(ctx, []models.ExpenseEntry{good}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Write raw rows that bypass the encoder: one corrupt, one with a
	// payer outside the roster.
	for _, row := range []struct {
		id   int64
		data string
	}{
		{400, `{"id":400,"broken`},
		{500, `{"id":500,"date":"2026-08-16","title":"taxi","cost":12000,"payer":"GHOST"}`},
	} {
		if _, err := store.db.ExecContext(ctx,
			"INSERT INTO entries (id, data) VALUES (?, ?)", row.id, row.data,
		); err != nil {
			t.Fatalf("raw insert failed: %v", err)
		}
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != 300 {
		t.Errorf("got %+v, want only the valid entry 300", loaded)
	}
}

func TestUsers(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	user := models.NewUser("me@trip.example", "Trip Admin", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("get by email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("got %+v, want user %s", got, user.ID)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Email != user.Email {
			t.Errorf("got %+v, want email %s", got, user.Email)
		}
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@trip.example")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		dup := models.NewUser(user.Email, "Impostor", "hash2")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("CreateUser accepted a duplicate email")
		}
	})
}
