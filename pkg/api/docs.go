package api

import (
	"net/http"

	"book-api/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// OpenAPI serves the swag generated document at /swagger.json.
// Regenerate with: swag init -g cmd/bookapi/main.go -o docs --outputTypes go
func OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
}

// SwaggerUI serves the Swagger UI and its doc.json under /swagger/.
func SwaggerUI() gin.HandlerFunc {
	return ginSwagger.WrapHandler(swaggerFiles.Handler)
}
