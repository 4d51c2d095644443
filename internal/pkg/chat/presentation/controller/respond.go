package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	chat "skillswap/internal/pkg/chat/application/domain"
	"skillswap/internal/pkg/chat/application/usecase"
)

// respondError maps use case errors onto HTTP statuses. Sentinel order
// matters: not-found is checked before authorization, so probing an unknown
// conversation ID reports 404 to everyone.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrConversationNotFound):
		fail(c, http.StatusNotFound, "conversation not found")
	case errors.Is(err, chat.ErrNotificationNotFound):
		fail(c, http.StatusNotFound, "notification not found")
	case errors.Is(err, chat.ErrNotParticipant):
		fail(c, http.StatusForbidden, "not a participant in this conversation")
	case errors.Is(err, chat.ErrNotOwner):
		fail(c, http.StatusForbidden, "notification belongs to another user")
	case errors.Is(err, usecase.ErrPersistence):
		fail(c, http.StatusInternalServerError, "unexpected persistence error")
	default:
		fail(c, http.StatusBadRequest, err.Error())
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
