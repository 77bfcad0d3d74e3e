package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"book-api/pkg/models"

	"gorm.io/gorm"
)

// BookInput carries the client supplied fields of a book.
// A nil PublishedOn means "now" on create and "unchanged" on update.
type BookInput struct {
	Title       string
	ISBN        string
	Pages       int
	Price       float64
	AuthorID    uint
	PublishedOn *time.Time
}

func (in BookInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("title is required: %w", ErrInvalid)
	case strings.TrimSpace(in.ISBN) == "":
		return fmt.Errorf("isbn is required: %w", ErrInvalid)
	case in.Pages <= 0:
		return fmt.Errorf("pages must be positive: %w", ErrInvalid)
	case in.Price < 0:
		return fmt.Errorf("price must not be negative: %w", ErrInvalid)
	case in.AuthorID == 0:
		return fmt.Errorf("authorId is required: %w", ErrInvalid)
	}
	return nil
}

var bookUpdateColumns = []string{"title", "isbn", "pages", "price", "author_id", "published_on"}

type BookDAO struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBookDAO(db *gorm.DB) *BookDAO {
	return &BookDAO{db: db, now: time.Now}
}

// List returns every book ordered by id.
func (d *BookDAO) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := d.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (d *BookDAO) Get(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := d.db.WithContext(ctx).First(&book, id).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

func (d *BookDAO) Create(ctx context.Context, in BookInput) (*models.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := d.db.WithContext(ctx)
	if err := authorExists(db, in.AuthorID); err != nil {
		return nil, err
	}

	book := models.Book{
		Title:       in.Title,
		ISBN:        in.ISBN,
		Pages:       in.Pages,
		Price:       in.Price,
		AuthorID:    in.AuthorID,
		PublishedOn: d.timestamp(in.PublishedOn),
	}
	if err := db.Create(&book).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("author %d: %w", in.AuthorID, ErrAuthorNotFound)
		}
		return nil, fmt.Errorf("create book: %w", err)
	}
	return &book, nil
}

// Update overwrites every client supplied field, authorId included.
func (d *BookDAO) Update(ctx context.Context, id uint, in BookInput) (*models.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := d.db.WithContext(ctx)

	var book models.Book
	err := db.First(&book, id).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	if err := authorExists(db, in.AuthorID); err != nil {
		return nil, err
	}

	book.Title = in.Title
	book.ISBN = in.ISBN
	book.Pages = in.Pages
	book.Price = in.Price
	book.AuthorID = in.AuthorID
	if in.PublishedOn != nil {
		book.PublishedOn = d.timestamp(in.PublishedOn)
	}

	res := db.Model(&book).Select(bookUpdateColumns).Updates(&book)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return nil, fmt.Errorf("author %d: %w", in.AuthorID, ErrAuthorNotFound)
		}
		return nil, fmt.Errorf("update book %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return &book, nil
}

func (d *BookDAO) Delete(ctx context.Context, id uint) error {
	res := d.db.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete book %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return nil
}

// timestamp normalizes to UTC at microsecond precision, the finest
// resolution postgres keeps.
func (d *BookDAO) timestamp(t *time.Time) time.Time {
	if t == nil {
		return d.now().UTC().Truncate(time.Microsecond)
	}
	return t.UTC().Truncate(time.Microsecond)
}

func authorExists(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Author{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check author %d: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("author %d: %w", id, ErrAuthorNotFound)
	}
	return nil
}
