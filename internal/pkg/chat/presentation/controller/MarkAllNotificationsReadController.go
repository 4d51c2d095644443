package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/pkg/chat/application/usecase"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// MarkAllNotificationsReadController handles the bulk read-acknowledgement
// endpoint.
type MarkAllNotificationsReadController struct {
	markAllUC *usecase.MarkAllNotificationsReadUseCase
}

func NewMarkAllNotificationsReadController(markAllUC *usecase.MarkAllNotificationsReadUseCase) *MarkAllNotificationsReadController {
	return &MarkAllNotificationsReadController{markAllUC: markAllUC}
}

func (ctl *MarkAllNotificationsReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ctl.markAllUC.Execute(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
