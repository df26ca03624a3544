package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container, so the store client is an explicit injected dependency rather
// than an ambient singleton.
type RepositoryProvider struct {
	BookRepo   BookRepository
	LedgerRepo LedgerRepository
}
