package leaderboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mcdev12/clicker/go/internal/kvstore"
)

// failingStore reads like an empty store but refuses writes
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, kvstore.ErrNotFound
}

func (failingStore) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestRecordSequence(t *testing.T) {
	ctx := context.Background()
	board := New(kvstore.NewMemoryStore(), "", 0)

	steps := []struct {
		score int
		want  []int
	}{
		{10, []int{10}},
		{25, []int{25, 10}},
		{5, []int{25, 10, 5}},
		{1, []int{25, 10, 5, 1}},
		{2, []int{25, 10, 5, 2, 1}},
		{3, []int{25, 10, 5, 3, 2}},
	}

	for _, step := range steps {
		got, err := board.Record(ctx, step.score)
		if err != nil {
			t.Fatalf("Record(%d) failed: %v", step.score, err)
		}
		if diff := cmp.Diff(step.want, got); diff != "" {
			t.Errorf("Record(%d) mismatch (-want +got):\n%s", step.score, diff)
		}
	}
}

func TestRecordThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	board := New(kvstore.NewMemoryStore(), DefaultKey, DefaultSize)

	var recorded []int
	for _, score := range []int{7, 42, 7, 0, 19, 33, 42, 8} {
		var err error
		recorded, err = board.Record(ctx, score)
		if err != nil {
			t.Fatalf("Record(%d) failed: %v", score, err)
		}
	}

	loaded := board.Load(ctx)
	if diff := cmp.Diff(recorded, loaded); diff != "" {
		t.Errorf("Load differs from last Record (-record +load):\n%s", diff)
	}
	if diff := cmp.Diff([]int{42, 42, 33, 19, 8}, loaded); diff != "" {
		t.Errorf("unexpected top scores (-want +got):\n%s", diff)
	}
}

func TestLoadBoundedAndSorted(t *testing.T) {
	ctx := context.Background()

	for n := 0; n <= 12; n++ {
		board := New(kvstore.NewMemoryStore(), "", 0)
		for i := 0; i < n; i++ {
			// Scores arrive in a scrambled order
			if _, err := board.Record(ctx, (i*7)%11); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
		}

		got := board.Load(ctx)
		wantLen := n
		if wantLen > DefaultSize {
			wantLen = DefaultSize
		}
		if len(got) != wantLen {
			t.Errorf("n=%d: expected %d scores, got %v", n, wantLen, got)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1] < got[i] {
				t.Errorf("n=%d: leaderboard not descending: %v", n, got)
				break
			}
		}
	}
}

func TestLoadToleratesBadSlots(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data string
	}{
		{"malformed json", "[1, 2"},
		{"not an array", `{"score": 3}`},
		{"strings", `["a", "b"]`},
		{"null", "null"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			if err := kv.Put(ctx, DefaultKey, []byte(tt.data)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			got := New(kv, "", 0).Load(ctx)
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil list, got %#v", got)
			}
		})
	}
}

func TestLoadNormalizesTamperedSlot(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	if err := kv.Put(ctx, DefaultKey, []byte("[3, 9, 1, 12, 4, 7, 2]")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got := New(kv, "", 0).Load(ctx)
	if diff := cmp.Diff([]int{12, 9, 7, 4, 3}, got); diff != "" {
		t.Errorf("unexpected normalized list (-want +got):\n%s", diff)
	}
}

func TestRecordReturnsListWhenPersistFails(t *testing.T) {
	got, err := New(failingStore{}, "", 0).Record(context.Background(), 11)
	if err == nil {
		t.Fatal("expected persist error")
	}
	if diff := cmp.Diff([]int{11}, got); diff != "" {
		t.Errorf("unexpected list (-want +got):\n%s", diff)
	}
}

func TestFileBackedRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := kvstore.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := New(kv, "", 0).Record(ctx, 30); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := New(kv, "", 0).Record(ctx, 42); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// A fresh process reading the same directory sees the persisted array
	reopened, err := kvstore.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	raw, err := reopened.Get(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(raw) != "[42,30]" {
		t.Errorf("expected slot [42,30], got %s", raw)
	}
}
