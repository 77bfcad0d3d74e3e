package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"book-api/pkg/dao"
	"book-api/pkg/models"

	"github.com/gin-gonic/gin"
)

// AuthorStore is satisfied by *dao.AuthorDAO.
type AuthorStore interface {
	List(ctx context.Context) ([]models.Author, error)
	Get(ctx context.Context, id uint) (*models.Author, error)
	Create(ctx context.Context, in dao.AuthorInput) (*models.Author, error)
	Update(ctx context.Context, id uint, in dao.AuthorInput) (*models.Author, error)
	Delete(ctx context.Context, id uint) error
	Books(ctx context.Context, id uint) ([]models.Book, error)
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// List handles GET /authors/.
// @Summary List all authors
// @Tags authors
// @Produce json
// @Success 200 {array} AuthorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authors/ [get]
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, toAuthorResponses(authors))
}

// Create handles POST /authors/.
// @Summary Create a new author
// @Tags authors
// @Accept json
// @Produce json
// @Param author body AuthorRequest true "Author"
// @Success 201 {object} AuthorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authors/ [post]
func (ac *AuthorsController) Create(c *gin.Context) {
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	author, err := ac.store.Create(c.Request.Context(), req.toInput())
	if err != nil {
		ac.respondStoreError(c, err, 0, "create author")
		return
	}
	c.Header("Location", fmt.Sprintf("/authors/%d", author.ID))
	c.JSON(http.StatusCreated, toAuthorResponse(author))
}

// Get handles GET /authors/:id.
// @Summary Fetch an author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} AuthorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authors/{id} [get]
func (ac *AuthorsController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "author", c.Param("id"))
		return
	}

	author, err := ac.store.Get(c.Request.Context(), id)
	if err != nil {
		ac.respondStoreError(c, err, id, "get author")
		return
	}
	c.JSON(http.StatusOK, toAuthorResponse(author))
}

// Update handles PUT /authors/:id.
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param author body AuthorRequest true "Author"
// @Success 200 {object} AuthorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authors/{id} [put]
func (ac *AuthorsController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "author", c.Param("id"))
		return
	}

	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	author, err := ac.store.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		ac.respondStoreError(c, err, id, "update author")
		return
	}
	c.JSON(http.StatusOK, toAuthorResponse(author))
}

// Delete handles DELETE /authors/:id. Authors that still have books are kept.
// @Summary Delete an author without books
// @Tags authors
// @Param id path int true "Author ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authors/{id} [delete]
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "author", c.Param("id"))
		return
	}

	if err := ac.store.Delete(c.Request.Context(), id); err != nil {
		ac.respondStoreError(c, err, id, "delete author")
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

// Books handles GET /authors/:id/books.
// @Summary List the books of an author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {array} BookResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authors/{id}/books [get]
func (ac *AuthorsController) Books(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "author", c.Param("id"))
		return
	}

	books, err := ac.store.Books(c.Request.Context(), id)
	if err != nil {
		ac.respondStoreError(c, err, id, "list author books")
		return
	}
	c.JSON(http.StatusOK, toBookResponses(books))
}

func (ac *AuthorsController) respondStoreError(c *gin.Context, err error, id uint, op string) {
	switch {
	case errors.Is(err, dao.ErrNotFound):
		respondNotFound(c, "author", id)
	case errors.Is(err, dao.ErrHasBooks):
		respondConflict(c, fmt.Sprintf("author %d still has books", id))
	case errors.Is(err, dao.ErrInvalid):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, op)
	}
}
