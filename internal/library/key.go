package library

import "github.com/mrlokans/library/internal/entities"

// NormalizeKey builds the identity used to match catalog results against the
// library. Matching is exact after lowercasing with the same folding the
// listing filters use; whitespace is kept as is.
func NormalizeKey(title, author string) string {
	return entities.Fold(title) + "|" + entities.Fold(author)
}
