package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/pkg/chat/application/usecase"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// MarkNotificationReadController handles the single-notification read
// acknowledgement endpoint.
type MarkNotificationReadController struct {
	markUC *usecase.MarkNotificationReadUseCase
}

func NewMarkNotificationReadController(markUC *usecase.MarkNotificationReadUseCase) *MarkNotificationReadController {
	return &MarkNotificationReadController{markUC: markUC}
}

func (ctl *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := ctl.markUC.Execute(c.Request.Context(), usecase.MarkNotificationReadInput{
			NotificationID: c.Param("notificationId"),
			RequesterID:    middleware.CurrentUserID(c),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"notification": n,
		})
	}
}
