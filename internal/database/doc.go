// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── books/           # Library entries: CRUD and filtered listing
//	└── searches/        # Append-only log of catalog searches
//
// # Using Sub-packages
//
// The Database handle is created once at start-up and handed to each
// repository constructor:
//
//	db, err := database.NewDatabase("./library.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	searchRepo := searches.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(ctx, id)
//	recent, err := searchRepo.Recent(ctx, 5)
//
// # Interface Implementations
//
//   - books.Repository: implements library.BookStore
//   - searches.Repository: implements library.SearchLog and tasks.SearchPruner
//
// Compile-time checks live in internal/interfaces.
package database
