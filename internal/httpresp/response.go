package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Message acknowledges a mutation that returns no body of its own.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Created acknowledges a new resource with its system-assigned id.
func Created(c *gin.Context, message string, id uint) {
	c.JSON(http.StatusCreated, gin.H{"message": message, "id": id})
}
