package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zahidx/cashbook/internal/core/domain"
	portsrepo "github.com/zahidx/cashbook/internal/core/ports/repositories"
	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
	"github.com/zahidx/cashbook/internal/middleware"
)

// FeedService republishes a book's full transaction list to subscribers
// whenever the store's transaction set for that book changes. It implements
// both the subscription facade and the change notifier the mutator calls
// after each commit.
type FeedService struct {
	reader portsrepo.TransactionReader

	mu     sync.Mutex
	subs   map[string]map[uint64]*feedObserver
	revs   map[string]uint64 // bumped on every committed change
	nextID uint64
}

// feedObserver carries one subscriber's channel plus the revision of the
// snapshot last handed to it, so an older read can never overwrite a newer
// delivery.
type feedObserver struct {
	ch  chan []domain.Transaction
	rev uint64
}

// NewFeedService creates a new FeedService on top of the store's read side.
func NewFeedService(reader portsrepo.TransactionReader) *FeedService {
	return &FeedService{
		reader: reader,
		subs:   make(map[string]map[uint64]*feedObserver),
		revs:   make(map[string]uint64),
	}
}

var (
	_ portssvc.FeedSvcFacade  = (*FeedService)(nil)
	_ portssvc.ChangeNotifier = (*FeedService)(nil)
)

// Subscribe registers an observer for bookID and delivers the current list.
// Registration happens before the initial read: a change committed while the
// read is in flight reaches the observer through BookChanged instead of
// falling into the gap, and the revision check discards the initial result if
// it lost that race. The unsubscribe func releases the observer exactly once;
// not calling it leaks the listener for the lifetime of the process.
func (s *FeedService) Subscribe(ctx context.Context, bookID string) (<-chan []domain.Transaction, func(), error) {
	// Buffer of one: the channel always holds at most the latest snapshot.
	obs := &feedObserver{ch: make(chan []domain.Transaction, 1)}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	if s.subs[bookID] == nil {
		s.subs[bookID] = make(map[uint64]*feedObserver)
	}
	s.subs[bookID][id] = obs
	rev := s.revs[bookID]
	s.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if observers, ok := s.subs[bookID]; ok {
				delete(observers, id)
				if len(observers) == 0 {
					delete(s.subs, bookID)
				}
			}
			close(obs.ch)
		})
	}

	snapshot, err := s.reader.ListTransactionsByBookID(ctx, bookID)
	if err != nil {
		unsubscribe()
		return nil, nil, err
	}

	// Deliver the initial snapshot unless a change notification pushed a
	// newer one while the read was in flight.
	s.mu.Lock()
	if rev >= obs.rev {
		obs.rev = rev
		deliver(obs.ch, snapshot)
	}
	s.mu.Unlock()

	return obs.ch, unsubscribe, nil
}

// BookChanged refreshes the list once and fans it out to every observer of
// the book. Delivery is latest-wins per observer: a pending stale snapshot is
// replaced rather than queued, so a slow observer never blocks a commit.
func (s *FeedService) BookChanged(ctx context.Context, bookID string) {
	s.mu.Lock()
	s.revs[bookID]++
	rev := s.revs[bookID]
	hasObservers := len(s.subs[bookID]) > 0
	s.mu.Unlock()
	if !hasObservers {
		return
	}

	snapshot, err := s.reader.ListTransactionsByBookID(ctx, bookID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to refresh transaction feed",
			slog.String("book_id", bookID), slog.String("error", err.Error()))
		return
	}

	// Send under the lock: unsubscribe closes channels under the same lock,
	// so a send can never race a close.
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obs := range s.subs[bookID] {
		if rev < obs.rev {
			continue // a newer snapshot already landed
		}
		obs.rev = rev
		deliver(obs.ch, snapshot)
	}
}

// deliver swaps the observer's pending snapshot for the given one.
// Must be called with s.mu held; the channel is open while the lock is held.
func deliver(ch chan []domain.Transaction, snapshot []domain.Transaction) {
	select {
	case <-ch: // drop the stale pending snapshot
	default:
	}
	select {
	case ch <- snapshot:
	default:
	}
}
