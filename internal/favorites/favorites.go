// Package favorites owns the user's starred photos. The backing kv.Store is
// the single source of truth: every query re-reads it and every mutation
// rewrites the whole serialized list.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/kv"
	"github.com/five82/galleria/internal/photo"
)

// StorageKey is the kv key holding the JSON favorites list.
const StorageKey = "cp_favs"

// Store reads and mutates the favorites list.
type Store struct {
	mu sync.Mutex
	kv kv.Store
}

// New returns a Store persisting into backing.
func New(backing kv.Store) *Store {
	return &Store{kv: backing}
}

// List returns the favorites, most recently added first. Missing or
// unreadable storage yields an empty list.
func (s *Store) List(ctx context.Context) []photo.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// IsFavorited reports whether id is in the list.
func (s *Store) IsFavorited(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.load(ctx), id) >= 0
}

// Count returns the number of favorites.
func (s *Store) Count(ctx context.Context) int {
	return len(s.List(ctx))
}

// Toggle removes p when it is already a favorite and prepends it otherwise,
// returning the resulting membership. The list is rewritten in full.
func (s *Store) Toggle(ctx context.Context, p photo.Photo) (bool, error) {
	if !p.Valid() {
		return false, fmt.Errorf("photo id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.load(ctx)
	favorited := false
	if i := indexOf(favs, p.ID); i >= 0 {
		favs = append(favs[:i:i], favs[i+1:]...)
	} else {
		favs = append([]photo.Photo{p}, favs...)
		favorited = true
	}

	if err := s.save(ctx, favs); err != nil {
		return !favorited, err
	}
	return favorited, nil
}

func (s *Store) load(ctx context.Context) []photo.Photo {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		klog.Warningf("favorites unreadable, treating as empty: %v", err)
		return []photo.Photo{}
	}
	if !ok || raw == "" {
		return []photo.Photo{}
	}

	var favs []photo.Photo
	if err := json.Unmarshal([]byte(raw), &favs); err != nil {
		klog.V(1).Infof("favorites payload corrupt, treating as empty: %v", err)
		return []photo.Photo{}
	}

	// Drop entries that could never be matched or removed, and duplicates a
	// hand-edited file may carry.
	seen := make(map[string]struct{}, len(favs))
	out := favs[:0]
	for _, f := range favs {
		if !f.Valid() {
			continue
		}
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}
	return out
}

func (s *Store) save(ctx context.Context, favs []photo.Photo) error {
	if favs == nil {
		favs = []photo.Photo{}
	}
	data, err := json.Marshal(favs)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}

func indexOf(favs []photo.Photo, id string) int {
	for i, f := range favs {
		if f.ID == id {
			return i
		}
	}
	return -1
}
