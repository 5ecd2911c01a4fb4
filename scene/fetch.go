package scene

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/marketdata"
)

// Notice texts shown in the blocking modal.
const (
	NoticeLoadFailed   = "Could not load market data. Try reloading."
	NoticeSearchFailed = "Search failed."
	noticeNotFound     = "Asset not found: "
)

type fetchKind uint8

const (
	fetchTop fetchKind = iota
	fetchLookup
)

// fetchResult is what a fetch goroutine hands back to the frame thread.
type fetchResult struct {
	kind   fetchKind
	term   string // search term as typed, for notices
	assets []components.Asset
	err    error
}

// Load starts the initial listing fetch. PageLoading stays true until the
// result is applied in a later Tick.
func (s *Scene) Load() {
	s.pageLoading = true
	s.fetch(func(r *fetchResult) {
		r.kind = fetchTop
		r.assets, r.err = s.source.Top(s.ctx)
	})
}

// Search selects the asset matching term by id or symbol, or looks it up
// remotely and adds it. An empty term does nothing.
func (s *Scene) Search(term string) {
	typed := strings.TrimSpace(term)
	if typed == "" {
		return
	}
	id := strings.ToLower(typed)

	if match, ok := s.localMatch(id); ok {
		s.camera.Select(match)
		return
	}

	s.pendingSearches++
	s.fetch(func(r *fetchResult) {
		r.kind = fetchLookup
		r.term = typed
		a, err := s.source.Lookup(s.ctx, id)
		if err != nil {
			r.err = err
			return
		}
		r.assets = []components.Asset{a}
	})
}

// localMatch finds an asset whose id or lowercased symbol equals term.
func (s *Scene) localMatch(term string) (string, bool) {
	if _, ok := s.index[term]; ok {
		return term, true
	}
	for _, e := range s.order {
		a := s.assets.Get(e)
		if strings.ToLower(a.Symbol) == term {
			return a.ID, true
		}
	}
	return "", false
}

// fetch runs fn on a goroutine and queues its result for the next Tick.
func (s *Scene) fetch(fn func(r *fetchResult)) {
	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()
		var r fetchResult
		fn(&r)
		s.mu.Lock()
		s.inbox = append(s.inbox, r)
		s.mu.Unlock()
	}()
}

// AwaitFetches blocks until every started fetch has queued its result.
// Results are applied on the next Tick.
func (s *Scene) AwaitFetches() {
	s.fetches.Wait()
}

// ApplyFetches applies queued fetch results without advancing the scene.
func (s *Scene) ApplyFetches() {
	s.drainInbox()
}

// drainInbox applies queued fetch results in arrival order.
func (s *Scene) drainInbox() {
	s.mu.Lock()
	results := s.inbox
	s.inbox = nil
	s.mu.Unlock()

	for _, r := range results {
		switch r.kind {
		case fetchTop:
			s.applyTop(r)
		case fetchLookup:
			s.applyLookup(r)
		}
	}
}

func (s *Scene) applyTop(r fetchResult) {
	s.pageLoading = false
	if r.err != nil {
		slog.Error("initial load failed", "error", r.err)
		s.notice = NoticeLoadFailed
		return
	}
	s.addAssets(r.assets)
}

func (s *Scene) applyLookup(r fetchResult) {
	if s.pendingSearches > 0 {
		s.pendingSearches--
	}
	switch {
	case errors.Is(r.err, marketdata.ErrNotFound):
		slog.Warn("search found nothing", "term", r.term)
		s.notice = noticeNotFound + r.term
	case r.err != nil:
		slog.Error("search failed", "term", r.term, "error", r.err)
		s.notice = NoticeSearchFailed
	default:
		s.addAssets(r.assets)
		if len(r.assets) == 0 || !s.Has(r.assets[0].ID) {
			slog.Warn("search returned no usable asset", "term", r.term)
			s.notice = noticeNotFound + r.term
			return
		}
		s.camera.Select(r.assets[0].ID)
	}
}
