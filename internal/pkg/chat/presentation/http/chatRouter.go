package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	authport "skillswap/internal/infrastructure/auth/port"
	cacheport "skillswap/internal/infrastructure/cache/port"
	queueport "skillswap/internal/infrastructure/queue/port"
	"skillswap/internal/infrastructure/realtime"
	"skillswap/internal/pkg/chat/application/dispatch"
	"skillswap/internal/pkg/chat/application/display"
	"skillswap/internal/pkg/chat/application/usecase"
	repoAdapter "skillswap/internal/pkg/chat/persistence/repository/adapter"
	"skillswap/internal/pkg/chat/presentation/controller"
	"skillswap/internal/pkg/chat/presentation/middleware"
)

// RegisterRoutes registers the conversation, message, and notification
// endpoints under the given router group, plus the websocket gateway. It
// constructs per-endpoint controllers and binds them directly to routes.
// Every route requires a valid access token.
func RegisterRoutes(
	g *gin.RouterGroup,
	pool *pgxpool.Pool,
	cache cacheport.Cache,
	queue queueport.Client,
	verifier authport.TokenVerifier,
	registry *realtime.Registry,
	rooms *realtime.Rooms,
) {
	chatRepo := repoAdapter.NewPgChatRepository(pool)
	notifRepo := repoAdapter.NewPgNotificationRepository(pool)
	userRepo := repoAdapter.NewPgUserRepository(pool)

	resolver := display.NewResolver(userRepo, cache, 0)
	dispatcher := dispatch.NewMessageDispatcher(
		usecase.NewSendMessageUseCase(chatRepo),
		notifRepo,
		resolver,
		rooms,
		registry,
	)

	openCtl := controller.NewOpenConversationController(usecase.NewOpenConversationUseCase(chatRepo))
	listCtl := controller.NewListConversationsController(usecase.NewListConversationsUseCase(chatRepo))
	getMsgCtl := controller.NewGetMessagesController(usecase.NewFetchMessagesUseCase(chatRepo))
	sendMsgCtl := controller.NewSendMessageController(dispatcher)
	listNotifCtl := controller.NewListNotificationsController(usecase.NewListNotificationsUseCase(notifRepo))
	markNotifCtl := controller.NewMarkNotificationReadController(usecase.NewMarkNotificationReadUseCase(notifRepo))
	markAllNotifCtl := controller.NewMarkAllNotificationsReadController(usecase.NewMarkAllNotificationsReadUseCase(notifRepo))
	socketCtl := controller.NewChatSocketController(verifier, registry, rooms, dispatcher, usecase.NewJoinConversationUseCase(chatRepo), queue)

	// The socket endpoint authenticates inside the handler so it can reject
	// before the upgrade; everything else goes through the middleware.
	g.GET("/chat/ws", socketCtl.Handle())

	auth := g.Group("", middleware.RequireAuth(verifier))

	// POST /api/v1/chat/conversations -> create-or-get a conversation with a user
	auth.POST("/chat/conversations", openCtl.Handle())

	// GET /api/v1/chat/conversations -> list the caller's conversations
	auth.GET("/chat/conversations", listCtl.Handle())

	// GET /api/v1/chat/conversations/:conversationId/messages -> fetch a page and mark it read
	auth.GET("/chat/conversations/:conversationId/messages", getMsgCtl.Handle())

	// POST /api/v1/chat/conversations/:conversationId/messages -> HTTP fallback send
	auth.POST("/chat/conversations/:conversationId/messages", sendMsgCtl.Handle())

	// GET /api/v1/notifications -> notification inbox with unread count
	auth.GET("/notifications", listNotifCtl.Handle())

	// POST /api/v1/notifications/:notificationId/read -> acknowledge one
	auth.POST("/notifications/:notificationId/read", markNotifCtl.Handle())

	// POST /api/v1/notifications/read-all -> acknowledge everything
	auth.POST("/notifications/read-all", markAllNotifCtl.Handle())
}
