package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	chat "skillswap/internal/pkg/chat/application/domain"
	"skillswap/internal/pkg/chat/application/usecase"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// ListNotificationsController handles the notification inbox endpoint.
type ListNotificationsController struct {
	listUC *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(listUC *usecase.ListNotificationsUseCase) *ListNotificationsController {
	return &ListNotificationsController{listUC: listUC}
}

// Handle returns the caller's notifications newest-first plus their total
// unread count. The unreadOnly query parameter filters to unread only.
func (ctl *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				fail(c, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}
		unreadOnly := c.Query("unreadOnly") == "true"

		notifications, unread, err := ctl.listUC.Execute(c.Request.Context(), usecase.ListNotificationsInput{
			UserID:     middleware.CurrentUserID(c),
			Limit:      limit,
			UnreadOnly: unreadOnly,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if notifications == nil {
			notifications = []chat.Notification{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"notifications": notifications,
			"unreadCount":   unread,
		})
	}
}
