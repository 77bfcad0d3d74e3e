package dao

import (
	"context"
	"fmt"
	"strings"

	"book-api/pkg/models"

	"gorm.io/gorm"
)

type AuthorInput struct {
	Name string
}

func (in AuthorInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrInvalid)
	}
	return nil
}

type AuthorDAO struct {
	db *gorm.DB
}

func NewAuthorDAO(db *gorm.DB) *AuthorDAO {
	return &AuthorDAO{db: db}
}

func (d *AuthorDAO) List(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	if err := d.db.WithContext(ctx).Order("id").Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (d *AuthorDAO) Get(ctx context.Context, id uint) (*models.Author, error) {
	return d.get(d.db.WithContext(ctx), id)
}

func (d *AuthorDAO) Create(ctx context.Context, in AuthorInput) (*models.Author, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	author := models.Author{Name: in.Name}
	if err := d.db.WithContext(ctx).Create(&author).Error; err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return &author, nil
}

func (d *AuthorDAO) Update(ctx context.Context, id uint, in AuthorInput) (*models.Author, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := d.db.WithContext(ctx)
	author, err := d.get(db, id)
	if err != nil {
		return nil, err
	}
	author.Name = in.Name
	res := db.Model(author).Select("name").Updates(author)
	if res.Error != nil {
		return nil, fmt.Errorf("update author %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("author %d: %w", id, ErrNotFound)
	}
	return author, nil
}

// Delete removes an author that no book references. Referenced authors
// are left in place and ErrHasBooks is returned.
func (d *AuthorDAO) Delete(ctx context.Context, id uint) error {
	db := d.db.WithContext(ctx)
	if _, err := d.get(db, id); err != nil {
		return err
	}

	var books int64
	if err := db.Model(&models.Book{}).Where("author_id = ?", id).Count(&books).Error; err != nil {
		return fmt.Errorf("count books of author %d: %w", id, err)
	}
	if books > 0 {
		return fmt.Errorf("author %d has %d books: %w", id, books, ErrHasBooks)
	}

	res := db.Delete(&models.Author{}, id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return fmt.Errorf("author %d: %w", id, ErrHasBooks)
		}
		return fmt.Errorf("delete author %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("author %d: %w", id, ErrNotFound)
	}
	return nil
}

// Books lists the books that reference the author, ordered by id.
func (d *AuthorDAO) Books(ctx context.Context, id uint) ([]models.Book, error) {
	db := d.db.WithContext(ctx)
	if _, err := d.get(db, id); err != nil {
		return nil, err
	}
	var books []models.Book
	if err := db.Where("author_id = ?", id).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books of author %d: %w", id, err)
	}
	return books, nil
}

func (d *AuthorDAO) get(db *gorm.DB, id uint) (*models.Author, error) {
	var author models.Author
	err := db.First(&author, id).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("author %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get author %d: %w", id, err)
	}
	return &author, nil
}
