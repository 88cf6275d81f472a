package controller

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// notificationBlock bounds each XRead so client disconnects are noticed.
const notificationBlock = 30 * time.Second

type NotificationController struct {
	cache  *redis.Client
	stream string
}

func NewNotificationController(cache *redis.Client, stream string) *NotificationController {
	return &NotificationController{
		cache:  cache,
		stream: stream,
	}
}

// StreamNotifications godoc
// @Summary Subscribe to threat notifications
// @Description Server-sent events stream; one event per newly stored threat
// @Tags Notification
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of threat JSON payloads"
// @Router /api/notifications [get]
func (ctrl *NotificationController) StreamNotifications(c *gin.Context) {
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// "$" means: only entries appended after the client connected
	lastID := "$"

	c.Stream(func(w io.Writer) bool {
		msgs, err := ctrl.cache.XRead(c.Request.Context(), &redis.XReadArgs{
			Streams: []string{ctrl.stream, lastID},
			Block:   notificationBlock,
			Count:   10,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// no new entries within the block window, keep waiting
				return true
			}
			return false
		}

		for _, msg := range msgs {
			for _, m := range msg.Messages {
				if payload, ok := m.Values["payload"].(string); ok {
					c.SSEvent("threat", payload)
				}
				lastID = m.ID
			}
		}
		return true
	})
}
