package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jpcarrillo/gastroguia/internal/helpers"
	"github.com/jpcarrillo/gastroguia/internal/middleware"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "gastroguia API is running.",
	})
}

// StreamEvents holds the connection open and relays every change event
// published after the client attached. Nothing is replayed: a client
// connecting late starts from an empty stream.
func StreamEvents(c *gin.Context) {
	hub := middleware.GetNotifier(c)
	if hub == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Event hub not found.")
		return
	}

	id, events := hub.Subscribe()
	defer hub.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("connected", gin.H{"message": "Connected to event stream."})
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("message", event)
			return true
		}
	})
}
