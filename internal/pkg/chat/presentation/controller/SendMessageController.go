package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/pkg/chat/application/dispatch"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// SendMessageController handles the HTTP fallback send endpoint for clients
// without a live socket. Unlike the realtime path there is no room
// membership to consult, so the recipient always gets a durable
// notification.
type SendMessageController struct {
	dispatcher *dispatch.MessageDispatcher
}

func NewSendMessageController(dispatcher *dispatch.MessageDispatcher) *SendMessageController {
	return &SendMessageController{dispatcher: dispatcher}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Handle persists the message, broadcasts it to any room subscribers, and
// returns 201 with the stored message.
func (ctl *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "content is required")
			return
		}

		msg, err := ctl.dispatcher.SendDirect(c.Request.Context(), conversationID, middleware.CurrentUserID(c), req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": msg,
		})
	}
}
