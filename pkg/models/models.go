package models

import (
	"time"
)

type Author struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Book struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:100;not null"`
	ISBN        string    `gorm:"column:isbn;size:100;not null"`
	Pages       int       `gorm:"not null;check:pages > 0"`
	Price       float64   `gorm:"not null;check:price >= 0"`
	PublishedOn time.Time `gorm:"not null"`
	AuthorID    uint      `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Books keep their author; deleting a referenced author is rejected.
	Author *Author `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{&Author{}, &Book{}}
}
