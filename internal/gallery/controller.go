package gallery

import (
	"context"
	"slices"
	"strings"

	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/favorites"
	"github.com/five82/galleria/internal/photo"
	"github.com/five82/galleria/internal/render"
	"github.com/five82/galleria/internal/source"
)

// Mode says how a fetch result lands on the gallery surface.
type Mode int

const (
	// ModeReplace results go to a freshly cleared surface.
	ModeReplace Mode = iota
	// ModeAppend results are added after the existing cards.
	ModeAppend
)

// Request describes one pending fetch. Gen ties it to the trigger that
// issued it so superseded results can be dropped.
type Request struct {
	Page  int
	Query string
	Mode  Mode
	Gen   uint64
}

// Result is the outcome of running a Request.
type Result struct {
	Request Request
	Photos  []photo.Photo
	Err     error
}

// Controller owns the gallery State and both surfaces. Trigger methods and
// Apply must be called from a single goroutine (the UI loop); Fetch may run
// anywhere.
type Controller struct {
	source    source.Source
	favorites *favorites.Store

	state    State
	gen      uint64
	inFlight bool

	gallery   render.Surface
	favorited render.Surface
}

// NewController returns a controller in the initial Explore state.
func NewController(src source.Source, favs *favorites.Store) *Controller {
	return &Controller{
		source:    src,
		favorites: favs,
		state:     initialState(),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Gallery returns the explore surface.
func (c *Controller) Gallery() *render.Surface {
	return &c.gallery
}

// Favorites returns the favorites surface.
func (c *Controller) Favorites() *render.Surface {
	return &c.favorited
}

// Loading reports whether a fetch for the current generation is outstanding.
func (c *Controller) Loading() bool {
	return c.inFlight
}

// Start builds the favorites surface and requests the first browse page.
func (c *Controller) Start(ctx context.Context) Request {
	c.RebuildFavorites(ctx)
	c.state = initialState()
	return c.replace()
}

// LoadMore advances to the next page. It is ignored outside the Explore view
// and while another fetch is outstanding.
func (c *Controller) LoadMore() (Request, bool) {
	if c.state.View != ViewExplore {
		return Request{}, false
	}
	if c.inFlight {
		klog.V(1).Infof("load more ignored: fetch in flight")
		return Request{}, false
	}
	c.state.Page++
	c.inFlight = true
	return Request{Page: c.state.Page, Query: c.state.Query, Mode: ModeAppend, Gen: c.gen}, true
}

// Search submits q. The trimmed query becomes the new state even when it is
// empty, in which case the fetch uses the listing endpoint.
func (c *Controller) Search(q string) Request {
	c.state.Query = strings.TrimSpace(q)
	c.state.Searched = true
	c.state.Page = 1
	return c.replace()
}

// ToggleView flips between the Explore and Favorites views.
func (c *Controller) ToggleView() View {
	if c.state.View == ViewExplore {
		c.state.View = ViewFavorites
	} else {
		c.state.View = ViewExplore
	}
	return c.state.View
}

// Explore shows the Explore view and restarts browsing from page 1.
func (c *Controller) Explore() Request {
	c.state = initialState()
	return c.replace()
}

func (c *Controller) replace() Request {
	c.gen++
	c.inFlight = true
	c.gallery.Clear()
	return Request{Page: c.state.Page, Query: c.state.Query, Mode: ModeReplace, Gen: c.gen}
}

// Fetch runs req against the photo source. It does not touch controller
// state and is safe to call from any goroutine.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	photos, err := c.source.Fetch(ctx, req.Page, req.Query)
	return Result{Request: req, Photos: photos, Err: err}
}

// Apply lands a fetch result on the gallery surface. It returns false when
// the result was superseded by a later trigger and dropped.
func (c *Controller) Apply(ctx context.Context, res Result) bool {
	req := res.Request
	if req.Gen != c.gen {
		klog.V(1).Infof("dropping stale page %d result (gen %d, current %d)", req.Page, req.Gen, c.gen)
		return false
	}
	c.inFlight = false

	switch req.Mode {
	case ModeAppend:
		if res.Err != nil {
			klog.Errorf("load more page %d failed: %v", req.Page, res.Err)
			if c.state.Page == req.Page {
				c.state.Page--
			}
			return true
		}
		c.gallery.Append(c.cards(ctx, res.Photos)...)
	default:
		if res.Err != nil {
			klog.Errorf("load page %d (query %q) failed: %v", req.Page, req.Query, res.Err)
			c.gallery.SetPlaceholder(c.failureMessage())
			return true
		}
		cards := c.cards(ctx, res.Photos)
		if len(cards) == 0 {
			c.gallery.SetPlaceholder(c.emptyMessage())
			return true
		}
		c.gallery.Clear()
		c.gallery.Append(cards...)
	}
	return true
}

// Do fetches and applies req synchronously.
func (c *Controller) Do(ctx context.Context, req Request) bool {
	return c.Apply(ctx, c.Fetch(ctx, req))
}

// ToggleFavorite flips p's membership, updates matching gallery cards in
// place and rebuilds the favorites surface. A storage write failure leaves
// every surface unchanged.
func (c *Controller) ToggleFavorite(ctx context.Context, p photo.Photo) (bool, error) {
	on, err := c.favorites.Toggle(ctx, p)
	if err != nil {
		klog.Errorf("toggle favorite %s: %v", p.ID, err)
		return on, err
	}
	c.gallery.SetFavorited(p.ID, on)
	c.RebuildFavorites(ctx)
	return on, nil
}

// RebuildFavorites discards and recreates every favorites card from storage.
func (c *Controller) RebuildFavorites(ctx context.Context) {
	c.rebuildFavorites(c.favorites.List(ctx))
}

func (c *Controller) rebuildFavorites(favs []photo.Photo) {
	c.favorited.Clear()
	if len(favs) == 0 {
		c.favorited.SetPlaceholder(render.MsgNoFavorites)
		return
	}
	cards := make([]render.Card, 0, len(favs))
	for _, p := range favs {
		cards = append(cards, render.NewCard(p, true))
	}
	c.favorited.Append(cards...)
}

// Resync rebuilds the favorites surface and recomputes gallery glyphs after
// storage changed underneath the controller. It reports false, touching
// nothing, when storage already matches the favorites surface, which is the
// case after the controller's own writes.
func (c *Controller) Resync(ctx context.Context) bool {
	favs := c.favorites.List(ctx)
	if slices.Equal(photo.IDs(favs), c.favoriteIDs()) {
		return false
	}
	c.rebuildFavorites(favs)
	set := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		set[f.ID] = struct{}{}
	}
	c.gallery.Sync(func(id string) bool {
		_, ok := set[id]
		return ok
	})
	return true
}

func (c *Controller) favoriteIDs() []string {
	cards := c.favorited.Cards()
	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID())
	}
	return ids
}

func (c *Controller) cards(ctx context.Context, photos []photo.Photo) []render.Card {
	set := c.favoriteSet(ctx)
	cards := make([]render.Card, 0, len(photos))
	for _, p := range photos {
		if !p.Valid() {
			continue
		}
		_, fav := set[p.ID]
		cards = append(cards, render.NewCard(p, fav))
	}
	return cards
}

func (c *Controller) favoriteSet(ctx context.Context) map[string]struct{} {
	favs := c.favorites.List(ctx)
	set := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		set[f.ID] = struct{}{}
	}
	return set
}

func (c *Controller) failureMessage() string {
	if c.state.Searched {
		return render.MsgSearchFailed
	}
	return render.MsgLoadFailed
}

func (c *Controller) emptyMessage() string {
	if c.state.Searched {
		return render.MsgNoResults
	}
	return render.MsgNoImages
}
