package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chat "skillswap/internal/pkg/chat/application/domain"
	"skillswap/internal/pkg/chat/application/usecase"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// ListConversationsController handles the conversation listing endpoint.
type ListConversationsController struct {
	listUC *usecase.ListConversationsUseCase
}

func NewListConversationsController(listUC *usecase.ListConversationsUseCase) *ListConversationsController {
	return &ListConversationsController{listUC: listUC}
}

// Handle returns the caller's conversations ordered by most recent activity,
// each with the other participant resolved, the last message, and the
// caller's unread count.
func (ctl *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := ctl.listUC.Execute(c.Request.Context(), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if summaries == nil {
			summaries = []chat.ConversationSummary{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"conversations": summaries,
		})
	}
}
