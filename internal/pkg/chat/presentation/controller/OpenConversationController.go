package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	chat "skillswap/internal/pkg/chat/application/domain"
	"skillswap/internal/pkg/chat/application/usecase"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// OpenConversationController handles the create-or-get conversation endpoint
// only (one controller per endpoint).
type OpenConversationController struct {
	openUC *usecase.OpenConversationUseCase
}

func NewOpenConversationController(openUC *usecase.OpenConversationUseCase) *OpenConversationController {
	return &OpenConversationController{openUC: openUC}
}

type openConversationRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

type conversationResponse struct {
	ID            string    `json:"id"`
	Participants  []string  `json:"participants"`
	LastMessageID *string   `json:"lastMessageId,omitempty"`
	UnreadCount   int       `json:"unreadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Handle returns 201 when a new conversation was created and 200 when the
// pair already had one. Both sides reach the same conversation regardless of
// who opened it.
func (ctl *OpenConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req openConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "participantId is required")
			return
		}

		userID := middleware.CurrentUserID(c)
		conv, created, err := ctl.openUC.Execute(c.Request.Context(), usecase.OpenConversationInput{
			RequesterID:   userID,
			ParticipantID: req.ParticipantID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"success":      true,
			"conversation": toConversationResponse(conv, userID),
		})
	}
}

func toConversationResponse(conv *chat.Conversation, viewerID string) conversationResponse {
	return conversationResponse{
		ID:            conv.ID,
		Participants:  conv.Participants,
		LastMessageID: conv.LastMessageID,
		UnreadCount:   conv.UnreadFor(viewerID),
		CreatedAt:     conv.CreatedAt,
		UpdatedAt:     conv.UpdatedAt,
	}
}
