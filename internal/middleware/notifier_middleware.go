package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jpcarrillo/gastroguia/internal/notifier"
)

func NotifierMiddleware(hub *notifier.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("notifier", hub)
		c.Next()
	}
}

func GetNotifier(c *gin.Context) *notifier.Hub {
	hub, exists := c.Get("notifier")
	if !exists {
		return nil
	}
	return hub.(*notifier.Hub)
}
