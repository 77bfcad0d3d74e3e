package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"book-api/pkg/models"

	"gorm.io/gorm"
)

type sampleBook struct {
	Title       string
	ISBN        string
	Pages       int
	Price       float64
	PublishedOn time.Time
}

// sampleCatalog is ordered so a fresh database always gives Frank Herbert id 1.
var sampleCatalog = []struct {
	Author string
	Books  []sampleBook
}{
	{Author: "Frank Herbert", Books: []sampleBook{
		{Title: "Dune", ISBN: "9780441013593", Pages: 412, Price: 9.99, PublishedOn: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Dune Messiah", ISBN: "9780593098233", Pages: 256, Price: 8.99, PublishedOn: time.Date(1969, 10, 15, 0, 0, 0, 0, time.UTC)},
	}},
	{Author: "Ursula K. Le Guin", Books: []sampleBook{
		{Title: "The Left Hand of Darkness", ISBN: "9780441478125", Pages: 304, Price: 10.5, PublishedOn: time.Date(1969, 3, 1, 0, 0, 0, 0, time.UTC)},
	}},
}

// Seed inserts the sample authors and books that are not present yet.
// Running it again leaves existing rows untouched.
func Seed(db *gorm.DB) error {
	for _, entry := range sampleCatalog {
		var author models.Author
		if err := db.Where(models.Author{Name: entry.Author}).FirstOrCreate(&author).Error; err != nil {
			return fmt.Errorf("seed author %s: %w", entry.Author, err)
		}

		for _, sb := range entry.Books {
			var book models.Book
			err := db.Where("isbn = ?", sb.ISBN).First(&book).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("seed book %s: %w", sb.ISBN, err)
			}
			book = models.Book{
				Title:       sb.Title,
				ISBN:        sb.ISBN,
				Pages:       sb.Pages,
				Price:       sb.Price,
				PublishedOn: sb.PublishedOn,
				AuthorID:    author.ID,
			}
			if err := db.Create(&book).Error; err != nil {
				return fmt.Errorf("seed book %s: %w", sb.ISBN, err)
			}
			log.Printf("[INFO] Created sample book: %s", book.Title)
		}
	}
	log.Println("[INFO] Sample data seeded")
	return nil
}
