package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes data under the conventional "data" envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created mirrors OK for resources newly accepted by the backend.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// List envelopes a slice along with its length so clients don't have to
// count it themselves.
func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": len(items),
	})
}
