package favorites

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/five82/galleria/internal/kv"
	"github.com/five82/galleria/internal/photo"
)

func newStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	return New(mem), mem
}

func img(id string) photo.Photo {
	return photo.Photo{ID: id, Title: "Photo " + id, Src: "https://example.com/" + id, Author: "Ada", Palette: []string{"#000"}}
}

func TestList_MissingStorageIsEmpty(t *testing.T) {
	s, _ := newStore(t)
	got := s.List(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("List = %#v, want empty non-nil slice", got)
	}
}

func TestList_CorruptStorageIsEmpty(t *testing.T) {
	s, mem := newStore(t)
	_ = mem.Set(context.Background(), StorageKey, "{definitely not a list")
	if got := s.List(context.Background()); len(got) != 0 {
		t.Fatalf("List = %#v, want empty", got)
	}
	if s.IsFavorited(context.Background(), "img-1") {
		t.Fatalf("IsFavorited on corrupt storage = true, want false")
	}
}

type failingKV struct{ kv.MemoryStore }

func (f *failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func TestList_ReadErrorIsEmpty(t *testing.T) {
	s := New(&failingKV{})
	if got := s.List(context.Background()); len(got) != 0 {
		t.Fatalf("List = %#v, want empty", got)
	}
}

func TestToggle_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	on, err := s.Toggle(ctx, img("img-1"))
	if err != nil || !on {
		t.Fatalf("Toggle add = %v, %v; want true, nil", on, err)
	}
	if !s.IsFavorited(ctx, "img-1") {
		t.Fatalf("IsFavorited(img-1) = false after add")
	}

	on, err = s.Toggle(ctx, img("img-1"))
	if err != nil || on {
		t.Fatalf("Toggle remove = %v, %v; want false, nil", on, err)
	}
	if s.IsFavorited(ctx, "img-1") {
		t.Fatalf("IsFavorited(img-1) = true after remove")
	}
	if got := s.List(ctx); len(got) != 0 {
		t.Fatalf("List = %#v, want empty", got)
	}
}

func TestToggle_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	for _, id := range []string{"img-3", "img-1"} {
		if _, err := s.Toggle(ctx, img(id)); err != nil {
			t.Fatalf("Toggle(%s) returned error: %v", id, err)
		}
	}
	got := photo.IDs(s.List(ctx))
	if want := []string{"img-1", "img-3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List ids = %v, want %v", got, want)
	}
	first := s.List(ctx)[0]
	if !reflect.DeepEqual(first, img("img-1")) {
		t.Fatalf("List[0] = %#v, want full img-1 record", first)
	}
}

func TestToggle_RemovesFromMiddleKeepingOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	for _, id := range []string{"a", "b", "c"} {
		_, _ = s.Toggle(ctx, img(id))
	}
	_, _ = s.Toggle(ctx, img("b"))
	got := photo.IDs(s.List(ctx))
	if want := []string{"c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List ids = %v, want %v", got, want)
	}
}

func TestToggle_PersistsFullList(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t)
	_, _ = s.Toggle(ctx, img("img-1"))

	raw, ok, _ := mem.Get(ctx, StorageKey)
	if !ok {
		t.Fatalf("favorites not persisted")
	}
	if raw[0] != '[' {
		t.Fatalf("persisted payload = %q, want JSON array", raw)
	}

	// A second Store over the same backing sees the same list.
	other := New(mem)
	if !other.IsFavorited(ctx, "img-1") {
		t.Fatalf("second store does not see persisted favorite")
	}
}

func TestToggle_RejectsEmptyID(t *testing.T) {
	s, _ := newStore(t)
	if _, err := s.Toggle(context.Background(), photo.Photo{}); err == nil {
		t.Fatalf("Toggle empty id returned nil error")
	}
}

func TestList_DropsDuplicatesAndBlankIDs(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t)
	_ = mem.Set(ctx, StorageKey, `[{"id":"a"},{"id":""},{"id":"a"},{"id":"b"}]`)
	got := photo.IDs(s.List(ctx))
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List ids = %v, want %v", got, want)
	}
}

func TestToggle_ConcurrentTogglesStayConsistent(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Toggle(ctx, img("img-1"))
		}()
	}
	wg.Wait()

	// An even number of toggles must leave the photo unfavorited.
	if s.IsFavorited(ctx, "img-1") {
		t.Fatalf("IsFavorited = true after even number of toggles")
	}
	if n := s.Count(ctx); n != 0 {
		t.Fatalf("Count = %d, want 0", n)
	}
}
