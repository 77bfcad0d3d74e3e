package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"book-api/pkg/config"
	"book-api/pkg/dao"
	"book-api/pkg/database"
	"book-api/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Database{Driver: config.DriverSQLite, DSN: ":memory:", MaxRetries: 1})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	r := NewRouter(RouterConfig{
		Books:   dao.NewBookDAO(db),
		Authors: dao.NewAuthorDAO(db),
		DB:      db,
	})
	return r, db
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

func seedAuthor(t *testing.T, db *gorm.DB, name string) models.Author {
	t.Helper()
	author := models.Author{Name: name}
	require.NoError(t, db.Create(&author).Error)
	return author
}

var errStoreDown = errors.New("connection refused")

// failingBookStore fails every call with errStoreDown.
type failingBookStore struct{}

func (failingBookStore) List(context.Context) ([]models.Book, error) { return nil, errStoreDown }
func (failingBookStore) Get(context.Context, uint) (*models.Book, error) {
	return nil, errStoreDown
}
func (failingBookStore) Create(context.Context, dao.BookInput) (*models.Book, error) {
	return nil, errStoreDown
}
func (failingBookStore) Update(context.Context, uint, dao.BookInput) (*models.Book, error) {
	return nil, errStoreDown
}
func (failingBookStore) Delete(context.Context, uint) error { return errStoreDown }

// failingAuthorStore fails every call with errStoreDown.
type failingAuthorStore struct{}

func (failingAuthorStore) List(context.Context) ([]models.Author, error) { return nil, errStoreDown }
func (failingAuthorStore) Get(context.Context, uint) (*models.Author, error) {
	return nil, errStoreDown
}
func (failingAuthorStore) Create(context.Context, dao.AuthorInput) (*models.Author, error) {
	return nil, errStoreDown
}
func (failingAuthorStore) Update(context.Context, uint, dao.AuthorInput) (*models.Author, error) {
	return nil, errStoreDown
}
func (failingAuthorStore) Delete(context.Context, uint) error { return errStoreDown }
func (failingAuthorStore) Books(context.Context, uint) ([]models.Book, error) {
	return nil, errStoreDown
}
