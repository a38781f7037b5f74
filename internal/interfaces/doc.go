// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore, BookLister: library persistence (internal/library/interfaces.go)
//   - SearchLog: search history (internal/library/interfaces.go)
//   - CoverStore, SearchPruner: storage used by background tasks (internal/tasks)
//
// ## External Services
//
//   - Catalog: external book search (internal/library/interfaces.go)
//   - CoverFetcher / CoverDownloader: remote cover download (internal/library, internal/tasks)
//
// ## Background Work
//
//   - CoverQueue: background cover download (internal/library/interfaces.go)
//   - PruneEnqueuer: search history pruning (internal/scheduler/search_prune.go)
//
// # Implementations
//
//   - books.Repository implements BookStore, BookLister and CoverStore
//   - searches.Repository implements SearchLog and SearchPruner
//   - catalog.Client implements Catalog
//   - covers.Fetcher implements CoverFetcher and CoverDownloader
//   - tasks.Client implements CoverQueue and PruneEnqueuer
//
// The compile-time checks in checks.go fail the build when an implementation
// drifts from its interface.
package interfaces
