package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	chat "skillswap/internal/pkg/chat/application/domain"
	"skillswap/internal/pkg/chat/application/usecase"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// GetMessagesController handles the message page endpoint. Fetching a page
// doubles as read acknowledgement: returned messages are marked seen and the
// caller's unread counter resets.
type GetMessagesController struct {
	fetchUC *usecase.FetchMessagesUseCase
}

func NewGetMessagesController(fetchUC *usecase.FetchMessagesUseCase) *GetMessagesController {
	return &GetMessagesController{fetchUC: fetchUC}
}

// Handle parses the optional before (RFC 3339) and limit query parameters
// and returns the page in chronological order.
func (ctl *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")

		var before *time.Time
		if raw := c.Query("before"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				fail(c, http.StatusBadRequest, "before must be an RFC 3339 timestamp")
				return
			}
			before = &t
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				fail(c, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}

		msgs, err := ctl.fetchUC.Execute(c.Request.Context(), usecase.FetchMessagesInput{
			ConversationID: conversationID,
			RequesterID:    middleware.CurrentUserID(c),
			Before:         before,
			Limit:          limit,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if msgs == nil {
			msgs = []chat.Message{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"messages": msgs,
		})
	}
}
