package services

import (
	portsrepo "github.com/zahidx/cashbook/internal/core/ports/repositories"
	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The feed is wired first so both mutating
// services can notify it after their commits.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	feed := NewFeedService(repos.LedgerRepo)

	return &portssvc.ServiceContainer{
		Feed:   feed,
		Ledger: NewLedgerService(repos.LedgerRepo, feed),
		Book:   NewBookService(repos.BookRepo, feed),
	}
}
