// Package dao implements create, read, update and delete access to the
// books and authors tables.
//
// Every operation runs on the *gorm.DB handed to the constructor, scoped to
// the caller's context:
//
//	books := dao.NewBookDAO(db)
//	book, err := books.Get(ctx, 7)
//	if errors.Is(err, dao.ErrNotFound) { ... }
package dao

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid means the input is missing a required field or breaks a
	// field constraint.
	ErrInvalid = errors.New("invalid input")
	// ErrAuthorNotFound means a book references an author id that does not exist.
	ErrAuthorNotFound = errors.New("referenced author does not exist")
	// ErrHasBooks means an author cannot be deleted while books reference it.
	ErrHasBooks = errors.New("author is referenced by books")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
