package services

import (
	"context"

	"github.com/zahidx/cashbook/internal/core/domain"
)

// ChangeNotifier receives a signal after every committed mutation of a book's
// transaction set (add/edit/delete, and book deletion). Implemented by the
// transaction feed; consumed by the ledger and book services.
type ChangeNotifier interface {
	BookChanged(ctx context.Context, bookID string)
}

// FeedSvcFacade delivers the live, newest-first transaction list of one book
// to observers without polling.
type FeedSvcFacade interface {
	// Subscribe registers an observer for bookID. The current list is
	// delivered on the returned channel immediately, and a fresh snapshot is
	// delivered after every committed change. Delivery is latest-wins: a slow
	// observer sees the newest snapshot, never a stale backlog.
	//
	// The returned unsubscribe func releases the observer and closes the
	// channel; it is idempotent, but it must be called or the listener leaks
	// for the lifetime of the process.
	Subscribe(ctx context.Context, bookID string) (updates <-chan []domain.Transaction, unsubscribe func(), err error)
}
