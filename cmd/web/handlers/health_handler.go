package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"law4you/session"
)

func HealthHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "visitors": reg.Len()})
	}
}
