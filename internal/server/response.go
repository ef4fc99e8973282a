package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DataResponse is the generic envelope returned by every endpoint.
type DataResponse struct {
	Data any `json:"data"`
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}
