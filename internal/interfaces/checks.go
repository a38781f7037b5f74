package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/covers"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/searches"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ library.BookStore = (*books.Repository)(nil)
var _ library.BookLister = (*books.Repository)(nil)

// SearchLog implementations
var _ library.SearchLog = (*searches.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// Catalog implementations
var _ library.Catalog = (*catalog.Client)(nil)

// CoverFetcher implementations
var _ library.CoverFetcher = (*covers.Fetcher)(nil)
var _ tasks.CoverDownloader = (*covers.Fetcher)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ library.CoverQueue = (*tasks.Client)(nil)
var _ scheduler.PruneEnqueuer = (*tasks.Client)(nil)
var _ tasks.CoverStore = (*books.Repository)(nil)
var _ tasks.SearchPruner = (*searches.Repository)(nil)
