package api

import (
	"log"
	"net/http"

	"book-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterConfig holds the dependencies of NewRouter.
type RouterConfig struct {
	Books   BookStore
	Authors AuthorStore
	DB      *gorm.DB // pinged by /manage/health

	TrustedProxies []string
	AllowedOrigins []string
	RateLimiter    *middleware.IPRateLimiter // nil disables rate limiting
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("[WARN] Invalid trusted proxies %v: %v", cfg.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}

	health := NewHealthController(cfg.DB)
	r.GET("/manage/health", health.Status)
	r.GET("/swagger.json", OpenAPI)
	r.GET("/swagger/*any", SwaggerUI())

	var limits []gin.HandlerFunc
	if cfg.RateLimiter != nil {
		limits = append(limits, middleware.RateLimit(cfg.RateLimiter))
	}

	bc := NewBooksController(cfg.Books)
	books := r.Group("/books", limits...)
	{
		books.GET("/", bc.List)
		books.POST("/", bc.Create)
		books.GET("/:id", bc.Get)
		books.PUT("/:id", bc.Update)
		books.DELETE("/:id", bc.Delete)
	}

	ac := NewAuthorsController(cfg.Authors)
	authors := r.Group("/authors", limits...)
	{
		authors.GET("/", ac.List)
		authors.POST("/", ac.Create)
		authors.GET("/:id", ac.Get)
		authors.PUT("/:id", ac.Update)
		authors.DELETE("/:id", ac.Delete)
		authors.GET("/:id/books", ac.Books)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	return r
}
