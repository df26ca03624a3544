package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zahidx/cashbook/internal/core/ports/repositories"
)

// NewRepositoryProvider creates the pgsql-backed repository set handed to the
// service container.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BookRepo:   NewBookRepository(pool),
		LedgerRepo: NewLedgerRepository(pool),
	}
}
