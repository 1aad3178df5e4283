package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sakif/snipshare/internal/api"
	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/notify"
)

// Paging bounds, clamped the same way for every list fetch.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// SnippetAPI is the slice of the API client the snippet store needs.
type SnippetAPI interface {
	Snippets(ctx context.Context, q api.ListQuery) (*model.SnippetPage, error)
	MySnippets(ctx context.Context, q api.ListQuery) (*model.SnippetPage, error)
	SnippetByID(ctx context.Context, id string) (*model.Snippet, error)
	CreateSnippet(ctx context.Context, input model.SnippetInput) (*model.Snippet, error)
	UpdateSnippet(ctx context.Context, id string, input model.SnippetInput) (*model.Snippet, error)
	DeleteSnippet(ctx context.Context, id string) error
	SavedSnippets(ctx context.Context, page, limit int) (*model.SnippetPage, error)
	SaveSnippet(ctx context.Context, id string) error
	UnsaveSnippet(ctx context.Context, id string) error
	IsSaved(ctx context.Context, id string) (bool, error)
}

// Slot names one of the independently-lived result sets.
type Slot int

const (
	SlotHome Slot = iota
	SlotMine
	SlotSaved
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotHome:
		return "home"
	case SlotMine:
		return "mine"
	case SlotSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// resultSet is one slot's view: an ordered ID list into the shared snippet
// map plus the server's pagination metadata, stored verbatim.
//
// seq is the freshness ticket for the slot. Every fetch takes a new ticket
// before going to the network; only the response holding the latest ticket
// may write the slot. A slow response from a superseded fetch is discarded
// instead of clobbering newer results.
type resultSet struct {
	ids        []string
	pagination model.Pagination
	loading    bool
	err        string
	seq        uint64
}

// SnippetStore holds every snippet the client has seen, normalized into a
// single by-ID map, plus the three result-set slots and the selected
// snippet. Because slots only hold IDs, a delete or update mutates the map
// once and is visible in every slot immediately — there is no sibling
// result set left silently stale.
type SnippetStore struct {
	mu       sync.Mutex
	byID     map[string]*model.Snippet
	sets     [slotCount]resultSet
	selected resultSet // ids holds zero or one ID

	// savedFlags is the optimistic per-snippet "is saved" state. Save and
	// Unsave flip it before the request resolves; the Saved result set
	// itself only changes on the next FetchSaved.
	savedFlags map[string]bool

	mutating bool // create/update/delete in flight

	api      SnippetAPI
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewSnippetStore(snippetAPI SnippetAPI, notifier notify.Notifier, logger *slog.Logger) *SnippetStore {
	return &SnippetStore{
		byID:       make(map[string]*model.Snippet),
		savedFlags: make(map[string]bool),
		api:        snippetAPI,
		notifier:   notifier,
		logger:     logger,
	}
}

// FetchHome replaces the public-feed result set.
func (s *SnippetStore) FetchHome(ctx context.Context, q api.ListQuery) (*model.SnippetPage, error) {
	q = clampQuery(q)
	return s.fetch(ctx, SlotHome, "Failed to load snippets", func() (*model.SnippetPage, error) {
		return s.api.Snippets(ctx, q)
	})
}

// FetchMine replaces the my-snippets result set. Authentication is
// server-enforced; an anonymous call fails with a session error which is
// surfaced like any other fetch failure.
func (s *SnippetStore) FetchMine(ctx context.Context, q api.ListQuery) (*model.SnippetPage, error) {
	q = clampQuery(q)
	return s.fetch(ctx, SlotMine, "Failed to load snippets", func() (*model.SnippetPage, error) {
		return s.api.MySnippets(ctx, q)
	})
}

// FetchSaved replaces the saved-snippets result set.
func (s *SnippetStore) FetchSaved(ctx context.Context, page, limit int) (*model.SnippetPage, error) {
	q := clampQuery(api.ListQuery{Page: page, Limit: limit})
	return s.fetch(ctx, SlotSaved, "Failed to fetch saved snippets", func() (*model.SnippetPage, error) {
		p, err := s.api.SavedSnippets(ctx, q.Page, q.Limit)
		if err != nil {
			return nil, err
		}
		// Everything in the saved collection is saved by definition.
		s.mu.Lock()
		for _, sn := range p.Snippets {
			s.savedFlags[sn.ID] = true
		}
		s.mu.Unlock()
		return p, nil
	})
}

// fetch runs one list request against a slot under a freshness ticket.
func (s *SnippetStore) fetch(ctx context.Context, slot Slot, fallback string, call func() (*model.SnippetPage, error)) (*model.SnippetPage, error) {
	ticket := s.beginFetch(slot)

	page, err := call()
	if err != nil {
		message := apperror.Message(err, fallback)
		if s.failFetch(slot, ticket, message) {
			s.notifier.Error(message)
		}
		s.logger.Error("fetch failed",
			slog.String("slot", slot.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if !s.completeFetch(slot, ticket, page) {
		s.logger.Debug("discarded stale response", slog.String("slot", slot.String()))
	}
	return page, nil
}

// beginFetch issues a new ticket for the slot and marks it loading.
func (s *SnippetStore) beginFetch(slot Slot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := &s.sets[slot]
	set.seq++
	set.loading = true
	set.err = ""
	return set.seq
}

// completeFetch installs a response if its ticket is still the latest for
// the slot. Returns false when the response was stale and discarded.
func (s *SnippetStore) completeFetch(slot Slot, ticket uint64, page *model.SnippetPage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := &s.sets[slot]
	if ticket != set.seq {
		return false
	}

	ids := make([]string, 0, len(page.Snippets))
	for i := range page.Snippets {
		sn := page.Snippets[i]
		s.byID[sn.ID] = &sn
		ids = append(ids, sn.ID)
	}
	set.ids = ids
	set.pagination = page.Pagination // server-computed, never recomputed here
	set.loading = false
	set.err = ""
	return true
}

// failFetch records a fetch failure unless a newer fetch has superseded
// this one. Returns whether the failure was recorded.
func (s *SnippetStore) failFetch(slot Slot, ticket uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := &s.sets[slot]
	if ticket != set.seq {
		return false
	}
	set.loading = false
	set.err = message
	return true
}

// FetchByID replaces the selected snippet. It runs under the same ticket
// discipline as the list slots so rapid detail navigation cannot land an
// older snippet over a newer one.
func (s *SnippetStore) FetchByID(ctx context.Context, id string) (*model.Snippet, error) {
	s.mu.Lock()
	s.selected.seq++
	ticket := s.selected.seq
	s.selected.loading = true
	s.selected.err = ""
	s.mu.Unlock()

	snippet, err := s.api.SnippetByID(ctx, id)

	s.mu.Lock()
	stale := ticket != s.selected.seq
	if !stale {
		s.selected.loading = false
		if err != nil {
			s.selected.err = apperror.Message(err, "Failed to load snippet details")
		} else {
			s.byID[snippet.ID] = snippet
			s.selected.ids = []string{snippet.ID}
		}
	}
	s.mu.Unlock()

	if err != nil {
		if !stale {
			s.notifier.Error(apperror.Message(err, "Failed to load snippet details"))
		}
		return nil, err
	}
	return snippet, nil
}

// Create submits a new snippet. On success it notifies but deliberately
// does NOT insert the record into any result set — the next navigation
// re-fetches, and the server's ordering decides where the snippet lands.
func (s *SnippetStore) Create(ctx context.Context, input model.SnippetInput) (*model.Snippet, error) {
	s.setMutating(true)
	defer s.setMutating(false)

	created, err := s.api.CreateSnippet(ctx, input)
	if err != nil {
		s.notifier.Error(apperror.Message(err, "Failed to create snippet"))
		return nil, err
	}

	s.mu.Lock()
	s.byID[created.ID] = created
	s.mu.Unlock()

	s.notifier.Success("Snippet created successfully")
	s.logger.Info("snippet created", slog.String("id", created.ID), slog.String("title", created.Title))
	return created, nil
}

// Update resubmits the full record. The refreshed snippet replaces the
// normalized copy once, so every slot referencing the ID sees it.
func (s *SnippetStore) Update(ctx context.Context, id string, input model.SnippetInput) (*model.Snippet, error) {
	s.setMutating(true)
	defer s.setMutating(false)

	updated, err := s.api.UpdateSnippet(ctx, id, input)
	if err != nil {
		s.notifier.Error(apperror.Message(err, "Failed to update snippet"))
		return nil, err
	}

	s.mu.Lock()
	s.byID[updated.ID] = updated
	s.mu.Unlock()

	s.notifier.Success("Snippet updated successfully")
	s.logger.Info("snippet updated", slog.String("id", updated.ID))
	return updated, nil
}

// Delete removes a snippet. The ID is pruned from the shared map, every
// slot's ID list and the selected slot, so no view renders a deleted
// snippet while waiting for its next fetch. Pagination metadata is left
// as the server last reported it; only a re-fetch may change totals.
func (s *SnippetStore) Delete(ctx context.Context, id string) error {
	s.setMutating(true)
	defer s.setMutating(false)

	if err := s.api.DeleteSnippet(ctx, id); err != nil {
		s.notifier.Error(apperror.Message(err, "Failed to delete snippet"))
		return err
	}

	s.mu.Lock()
	delete(s.byID, id)
	delete(s.savedFlags, id)
	for i := range s.sets {
		s.sets[i].ids = removeID(s.sets[i].ids, id)
	}
	s.selected.ids = removeID(s.selected.ids, id)
	s.mu.Unlock()

	s.notifier.Success("Snippet deleted successfully")
	s.logger.Info("snippet deleted", slog.String("id", id))
	return nil
}

// Save adds the snippet to the saved collection, flipping the local flag
// optimistically and rolling it back if the request fails. The Saved
// result set itself is untouched until its next fetch.
func (s *SnippetStore) Save(ctx context.Context, id string) error {
	s.setFlag(id, true)
	if err := s.api.SaveSnippet(ctx, id); err != nil {
		s.setFlag(id, false)
		s.notifier.Error(apperror.Message(err, "Failed to save snippet"))
		return err
	}
	s.notifier.Success("Snippet saved successfully")
	return nil
}

// Unsave removes the snippet from the saved collection; same optimistic
// contract as Save.
func (s *SnippetStore) Unsave(ctx context.Context, id string) error {
	s.setFlag(id, false)
	if err := s.api.UnsaveSnippet(ctx, id); err != nil {
		s.setFlag(id, true)
		s.notifier.Error(apperror.Message(err, "Failed to unsave snippet"))
		return err
	}
	s.notifier.Success("Snippet unsaved successfully")
	return nil
}

// CheckSaved asks the server whether the snippet is saved and records the
// answer as the authoritative local flag.
func (s *SnippetStore) CheckSaved(ctx context.Context, id string) (bool, error) {
	saved, err := s.api.IsSaved(ctx, id)
	if err != nil {
		return false, err
	}
	s.setFlag(id, saved)
	return saved, nil
}

// --- accessors ---

// Snippets resolves a slot's ID list against the normalized map.
// IDs whose snippet has been deleted resolve to nothing.
func (s *SnippetStore) Snippets(slot Slot) []model.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Snippet, 0, len(s.sets[slot].ids))
	for _, id := range s.sets[slot].ids {
		if sn, ok := s.byID[id]; ok {
			out = append(out, *sn)
		}
	}
	return out
}

// PaginationFor returns the slot's server-reported pagination metadata
// verbatim. HasNextPage/HasPrevPage pass through to the pagination
// controller without recomputation.
func (s *SnippetStore) PaginationFor(slot Slot) model.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[slot].pagination
}

// Loading reports whether a fetch for the slot is in flight.
func (s *SnippetStore) Loading(slot Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[slot].loading
}

// ErrFor returns the slot's last fetch error message, or "".
func (s *SnippetStore) ErrFor(slot Slot) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[slot].err
}

// Selected returns the selected snippet, or nil.
func (s *SnippetStore) Selected() *model.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selected.ids) == 0 {
		return nil
	}
	if sn, ok := s.byID[s.selected.ids[0]]; ok {
		copied := *sn
		return &copied
	}
	return nil
}

// Get returns a snippet from the normalized map, if the client has seen it.
func (s *SnippetStore) Get(id string) (*model.Snippet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sn, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	copied := *sn
	return &copied, true
}

// SavedFlag returns the local saved state for a snippet. ok is false when
// the client has never learned the state for this ID.
func (s *SnippetStore) SavedFlag(id string) (saved, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, ok = s.savedFlags[id]
	return saved, ok
}

// Mutating reports whether a create/update/delete is in flight.
func (s *SnippetStore) Mutating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutating
}

func (s *SnippetStore) setMutating(v bool) {
	s.mu.Lock()
	s.mutating = v
	s.mu.Unlock()
}

func (s *SnippetStore) setFlag(id string, saved bool) {
	s.mu.Lock()
	s.savedFlags[id] = saved
	s.mu.Unlock()
}

// clampQuery enforces sane paging bounds so callers can't request a
// million rows or page zero.
func clampQuery(q api.ListQuery) api.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
