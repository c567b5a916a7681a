package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects write requests whose body is not JSON. Multipart
// uploads are carved out for the picture upload route.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := strings.ToLower(c.GetHeader("Content-Type"))

			if strings.HasPrefix(ct, "multipart/form-data") {
				break
			}

			// allow "application/json; charset=utf-8"
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				abortError(c, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
		}
		c.Next()
	}
}
