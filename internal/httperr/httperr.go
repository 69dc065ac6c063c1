package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the single error shape every endpoint returns.
type HTTPError struct {
	Error string `json:"error"`
}

func Write(c *gin.Context, status int, code string) {
	c.JSON(status, HTTPError{Error: code})
}

func BadRequest(c *gin.Context, code string) {
	Write(c, http.StatusBadRequest, code)
}

func Unauthorized(c *gin.Context, code string) {
	Write(c, http.StatusUnauthorized, code)
}

func Forbidden(c *gin.Context, code string) {
	Write(c, http.StatusForbidden, code)
}

func NotFound(c *gin.Context, code string) {
	Write(c, http.StatusNotFound, code)
}

func Internal(c *gin.Context, code string) {
	Write(c, http.StatusInternalServerError, code)
}
