package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MaxReviewLength is the maximum number of characters allowed in a review.
	MaxReviewLength = 500

	MinRating = 1
	MaxRating = 5
)

// Book is a library entry. CoverBase64 holds either raw base64 image data or a
// data URI ("data:image/png;base64,...").
type Book struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"index;size:512;not null" json:"title"`
	Author      string    `gorm:"index;size:256;default:''" json:"author"`
	Year        *int      `json:"year"`
	CoverBase64 *string   `gorm:"type:text" json:"coverBase64,omitempty"`
	Review      string    `gorm:"type:text;default:''" json:"review"`
	Rating      *int      `gorm:"index" json:"rating,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Lowercased copies of Title and Author used by the listing filters.
	TitleFold  string `gorm:"size:512;default:''" json:"-"`
	AuthorFold string `gorm:"size:256;default:''" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not provide one.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	b.ID = id.String()
	return nil
}

// BeforeSave refreshes the folded search columns.
func (b *Book) BeforeSave(tx *gorm.DB) error {
	b.FoldSearchColumns()
	return nil
}

// FoldSearchColumns fills TitleFold and AuthorFold from Title and Author.
func (b *Book) FoldSearchColumns() {
	b.TitleFold = Fold(b.Title)
	b.AuthorFold = Fold(b.Author)
}

// Fold lowercases s with Unicode case mapping, so "Ángel" and "ángel" match.
func Fold(s string) string {
	return strings.ToLower(s)
}

// HasCover reports whether a cover payload is stored.
func (b *Book) HasCover() bool {
	return b.CoverBase64 != nil && *b.CoverBase64 != ""
}

// BookSummary is the listing projection of a Book. It has no cover column, so
// gorm never selects cover_base64 when scanning into it.
type BookSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      *int      `json:"year"`
	Review    string    `json:"review"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BookSummary) TableName() string {
	return "books"
}
