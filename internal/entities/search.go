package entities

import "time"

// SearchQuery records one submitted catalog search.
type SearchQuery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:512" json:"q"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (SearchQuery) TableName() string {
	return "searches"
}
