package session

import (
	"context"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/seatmap"
	"github.com/busline/seatplan/pkg/selection"
)

var key = seatdata.Key{TripID: "T1", BusModel: seatmap.ModelVIP, DepartureDate: "2025-03-14"}

func TestNew(t *testing.T) {
	d := New(key, time.Hour)
	if _, err := uuid.Parse(d.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", d.ID, err)
	}
	if d.Key != key {
		t.Errorf("Key = %+v", d.Key)
	}
	if d.IsExpired() {
		t.Error("new draft should not be expired")
	}
	if d.Selection().Len() != 0 {
		t.Error("new draft should be empty")
	}
	if New(key, 0).ExpiresAt.Sub(time.Now()) <= time.Hour {
		t.Error("zero ttl should use DefaultTTL")
	}
}

func TestDraftSetSelection(t *testing.T) {
	d := New(key, time.Minute)
	before := d.ExpiresAt

	time.Sleep(2 * time.Millisecond)
	d.SetSelection(selection.New(9, 3))

	if !reflect.DeepEqual(d.Seats, []int{3, 9}) {
		t.Errorf("Seats = %v, want [3 9]", d.Seats)
	}
	if !d.ExpiresAt.After(before) {
		t.Error("SetSelection should extend expiry")
	}
	if !d.Selection().Equal(selection.New(3, 9)) {
		t.Errorf("Selection() = %v", d.Selection().Numbers())
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil || got != nil {
		t.Fatalf("Get(missing) = %v, %v; want nil, nil", got, err)
	}

	d := New(key, time.Hour)
	d.SetSelection(selection.New(1, 2))
	if err := store.Set(ctx, d); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != d.ID || !reflect.DeepEqual(got.Seats, []int{1, 2}) {
		t.Errorf("Get() = %+v", got)
	}

	other := seatdata.Key{TripID: "T2", BusModel: seatmap.Model580, DepartureDate: "2025-03-15"}
	if got, _ := store.Get(ctx, other); got != nil {
		t.Error("drafts should be keyed by trip, model and date")
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.Get(ctx, key); got != nil {
		t.Error("deleted draft should be gone")
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	d := New(key, time.Hour)
	d.ExpiresAt = time.Now().Add(-time.Second)
	if err := store.Set(ctx, d); err != nil {
		t.Fatal(err)
	}

	if got, err := store.Get(ctx, key); err != nil || got != nil {
		t.Errorf("Get(expired) = %v, %v; want nil, nil", got, err)
	}
	if _, err := os.Stat(store.draftPath(key)); !os.IsNotExist(err) {
		t.Error("expired draft file should be removed on read")
	}
}

func TestFileStoreListAndCleanup(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	live := New(key, time.Hour)
	expired := New(seatdata.Key{TripID: "T9", BusModel: seatmap.Model580, DepartureDate: "2025-01-01"}, time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	for _, d := range []*Draft{live, expired} {
		if err := store.Set(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != live.ID {
		t.Errorf("List() = %d drafts, want only the live one", len(list))
	}

	n, err := store.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("Cleanup() = %d, want 1", n)
	}
}
