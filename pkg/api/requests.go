package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"book-api/pkg/dao"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// BookRequest is the body of POST /books/ and PUT /books/{id}.
// Price is a pointer so that a free book (0) differs from a missing price.
type BookRequest struct {
	Title       string     `json:"title" binding:"required,max=100"`
	ISBN        string     `json:"isbn" binding:"required,max=100"`
	Pages       int        `json:"pages" binding:"required,gt=0"`
	Price       *float64   `json:"price" binding:"required,gte=0"`
	AuthorID    uint       `json:"authorId" binding:"required"`
	PublishedOn *time.Time `json:"publishedOn"`
}

func (r BookRequest) toInput() dao.BookInput {
	return dao.BookInput{
		Title:       r.Title,
		ISBN:        r.ISBN,
		Pages:       r.Pages,
		Price:       *r.Price,
		AuthorID:    r.AuthorID,
		PublishedOn: r.PublishedOn,
	}
}

// AuthorRequest is the body of POST /authors/ and PUT /authors/{id}.
type AuthorRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (r AuthorRequest) toInput() dao.AuthorInput {
	return dao.AuthorInput{Name: r.Name}
}

func init() {
	// report json field names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondBindError turns a ShouldBindJSON failure into a 400 response.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var timeErr *time.ParseError

	switch {
	case errors.As(err, &validationErrs):
		details := make([]ErrorDetail, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, ErrorDetail{Field: fe.Field(), Message: validationMessage(fe)})
		}
		respondBadRequest(c, "input payload validation failed", details...)
	case errors.As(err, &typeErr):
		respondBadRequest(c, "input payload validation failed", ErrorDetail{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be of type %s", jsonType(typeErr.Type)),
		})
	case errors.As(err, &timeErr):
		respondBadRequest(c, "input payload validation failed", ErrorDetail{
			Field:   "publishedOn",
			Message: "must be an RFC 3339 timestamp",
		})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		respondBadRequest(c, "request body is not valid JSON")
	case errors.Is(err, io.EOF):
		respondBadRequest(c, "request body is required")
	default:
		respondBadRequest(c, err.Error())
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Uint, reflect.Uint64, reflect.Uint32:
		return "integer"
	case reflect.Float64, reflect.Float32:
		return "number"
	case reflect.Ptr:
		return jsonType(t.Elem())
	default:
		return t.Kind().String()
	}
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a record, so the caller answers 404.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
