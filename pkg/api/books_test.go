package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"book-api/pkg/dao"
	"book-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooks_Scenario(t *testing.T) {
	r, db := setupRouter(t)
	author := seedAuthor(t, db, "Frank Herbert")

	w := doRequest(t, r, "POST", "/books/", map[string]interface{}{
		"title": "Dune", "isbn": "123", "pages": 412, "price": 9.99, "authorId": author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	decode(t, w, &created)
	require.NotNil(t, created["id"])
	assert.Equal(t, "Dune", created["title"])
	assert.Equal(t, "123", created["isbn"])
	assert.Equal(t, float64(412), created["pages"])
	assert.Equal(t, 9.99, created["price"])
	assert.Equal(t, float64(author.ID), created["authorId"])
	assert.NotEmpty(t, created["publishedOn"])
	id := int(created["id"].(float64))
	assert.Equal(t, fmt.Sprintf("/books/%d", id), w.Header().Get("Location"))

	w = doRequest(t, r, "GET", fmt.Sprintf("/books/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched map[string]interface{}
	decode(t, w, &fetched)
	assert.Equal(t, created, fetched)

	w = doRequest(t, r, "DELETE", fmt.Sprintf("/books/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(t, r, "GET", fmt.Sprintf("/books/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, fmt.Sprintf("book %d doesn't exist", id), errResp.Error)
}

func TestBooksController_List(t *testing.T) {
	t.Run("returns empty array when no books", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, "GET", "/books/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("returns every created book", func(t *testing.T) {
		r, db := setupRouter(t)
		author := seedAuthor(t, db, "Frank Herbert")
		for i := 1; i <= 3; i++ {
			w := doRequest(t, r, "POST", "/books/", map[string]interface{}{
				"title": fmt.Sprintf("Book %d", i), "isbn": fmt.Sprint(i), "pages": 100 + i, "price": 1.5, "authorId": author.ID,
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		w := doRequest(t, r, "GET", "/books/", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var books []BookResponse
		decode(t, w, &books)
		require.Len(t, books, 3)
		assert.Equal(t, "Book 1", books[0].Title)
		assert.Equal(t, "Book 3", books[2].Title)
	})

	t.Run("path without trailing slash redirects", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, "GET", "/books", nil)

		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/books/", w.Header().Get("Location"))
	})
}

func TestBooksController_Create(t *testing.T) {
	t.Run("keeps supplied publishedOn", func(t *testing.T) {
		r, db := setupRouter(t)
		author := seedAuthor(t, db, "Frank Herbert")

		w := doRequest(t, r, "POST", "/books/", map[string]interface{}{
			"title": "Dune", "isbn": "123", "pages": 412, "price": 9.99, "authorId": author.ID,
			"publishedOn": "1965-08-01T00:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var book BookResponse
		decode(t, w, &book)
		assert.True(t, time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC).Equal(book.PublishedOn))
	})

	t.Run("accepts a zero price", func(t *testing.T) {
		r, db := setupRouter(t)
		author := seedAuthor(t, db, "Frank Herbert")

		w := doRequest(t, r, "POST", "/books/", map[string]interface{}{
			"title": "Free", "isbn": "0", "pages": 1, "price": 0, "authorId": author.ID,
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("unknown author is a validation error", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, "POST", "/books/", map[string]interface{}{
			"title": "Dune", "isbn": "123", "pages": 412, "price": 9.99, "authorId": 77,
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		decode(t, w, &resp)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "authorId", resp.Details[0].Field)
		assert.Equal(t, "author 77 doesn't exist", resp.Details[0].Message)
	})

	tests := []struct {
		name   string
		body   interface{}
		fields []string
	}{
		{
			name:   "missing fields",
			body:   map[string]interface{}{"title": "Dune"},
			fields: []string{"isbn", "pages", "price", "authorId"},
		},
		{
			name:   "negative pages and price",
			body:   map[string]interface{}{"title": "Dune", "isbn": "1", "pages": -3, "price": -1, "authorId": 1},
			fields: []string{"pages", "price"},
		},
		{
			name:   "wrong type",
			body:   map[string]interface{}{"title": "Dune", "isbn": "1", "pages": "many", "price": 1, "authorId": 1},
			fields: []string{"pages"},
		},
		{
			name:   "bad timestamp",
			body:   map[string]interface{}{"title": "Dune", "isbn": "1", "pages": 1, "price": 1, "authorId": 1, "publishedOn": "yesterday"},
			fields: []string{"publishedOn"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouter(t)

			w := doRequest(t, r, "POST", "/books/", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			var resp ErrorResponse
			decode(t, w, &resp)
			var fields []string
			for _, d := range resp.Details {
				fields = append(fields, d.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, "POST", "/books/", `{"title": "Dune",`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, "request body is not valid JSON", resp.Error)
	})

	t.Run("empty body", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, "POST", "/books/", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, "request body is required", resp.Error)
	})
}

func TestBooksController_Get(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		path    string
		message string
	}{
		{"/books/42", "book 42 doesn't exist"},
		{"/books/abc", "book abc doesn't exist"},
		{"/books/0", "book 0 doesn't exist"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doRequest(t, r, "GET", tt.path, nil)

			assert.Equal(t, http.StatusNotFound, w.Code)
			var resp ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestBooksController_Update(t *testing.T) {
	t.Run("replaces every field including the author", func(t *testing.T) {
		r, db := setupRouter(t)
		herbert := seedAuthor(t, db, "Frank Herbert")
		leGuin := seedAuthor(t, db, "Ursula K. Le Guin")

		w := doRequest(t, r, "POST", "/books/", map[string]interface{}{
			"title": "Dune", "isbn": "123", "pages": 412, "price": 9.99, "authorId": herbert.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var created BookResponse
		decode(t, w, &created)

		path := fmt.Sprintf("/books/%d", created.ID)
		w = doRequest(t, r, "PUT", path, map[string]interface{}{
			"title": "The Dispossessed", "isbn": "456", "pages": 387, "price": 11.5, "authorId": leGuin.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doRequest(t, r, "GET", path, nil)
		var got BookResponse
		decode(t, w, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "The Dispossessed", got.Title)
		assert.Equal(t, "456", got.ISBN)
		assert.Equal(t, 387, got.Pages)
		assert.Equal(t, 11.5, got.Price)
		assert.Equal(t, leGuin.ID, got.AuthorID)
		assert.True(t, created.PublishedOn.Equal(got.PublishedOn))
	})

	t.Run("missing book is not found and nothing is created", func(t *testing.T) {
		r, db := setupRouter(t)
		author := seedAuthor(t, db, "Frank Herbert")

		w := doRequest(t, r, "PUT", "/books/5", map[string]interface{}{
			"title": "Dune", "isbn": "123", "pages": 412, "price": 9.99, "authorId": author.ID,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, r, "GET", "/books/", nil)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("invalid body", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, "PUT", "/books/1", map[string]interface{}{"title": ""})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Delete(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, "DELETE", "/books/9", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksController_StoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := NewBooksController(failingBookStore{})

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/books/", controller.List)
	router.GET("/books/:id", controller.Get)
	router.DELETE("/books/:id", controller.Delete)
	router.POST("/books/", controller.Create)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/books/"},
		{"GET", "/books/1"},
		{"DELETE", "/books/1"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code, "%s %s", tc.method, tc.path)
		assert.NotContains(t, w.Body.String(), errStoreDown.Error())
	}

	w := doRequest(t, router, "POST", "/books/", map[string]interface{}{
		"title": "Dune", "isbn": "123", "pages": 412, "price": 9.99, "authorId": 1,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthorsController_GetWithTestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	author := seedAuthor(t, db, "Frank Herbert")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", fmt.Sprintf("/authors/%d", author.ID), nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: fmt.Sprint(author.ID)}}

	NewAuthorsController(dao.NewAuthorDAO(db)).Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp AuthorResponse
	decode(t, w, &resp)
	assert.Equal(t, author.ID, resp.ID)
	assert.Equal(t, "Frank Herbert", resp.Name)
}
