package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"book-api/pkg/middleware"
	"book-api/pkg/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail points at the request field that failed validation.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type BookResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	ISBN        string    `json:"isbn"`
	Pages       int       `json:"pages"`
	Price       float64   `json:"price"`
	PublishedOn time.Time `json:"publishedOn"`
	AuthorID    uint      `json:"authorId"`
}

type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toBookResponse(b *models.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		ISBN:        b.ISBN,
		Pages:       b.Pages,
		Price:       b.Price,
		PublishedOn: b.PublishedOn.UTC(),
		AuthorID:    b.AuthorID,
	}
}

func toBookResponses(books []models.Book) []BookResponse {
	items := make([]BookResponse, len(books))
	for i := range books {
		items[i] = toBookResponse(&books[i])
	}
	return items
}

func toAuthorResponse(a *models.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name}
}

func toAuthorResponses(authors []models.Author) []AuthorResponse {
	items := make([]AuthorResponse, len(authors))
	for i := range authors {
		items[i] = toAuthorResponse(&authors[i])
	}
	return items
}

func respondBadRequest(c *gin.Context, message string, details ...ErrorDetail) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

// respondNotFound uses the "<resource> <id> doesn't exist" wording for
// every missing record.
func respondNotFound(c *gin.Context, resource string, id interface{}) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("%s %v doesn't exist", resource, id)})
}

func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs err and hides it from the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("[ERROR] %s failed: request_id=%s error=%v", context, middleware.RequestIDFrom(c), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
