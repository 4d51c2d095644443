package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	authport "skillswap/internal/infrastructure/auth/port"
	queueport "skillswap/internal/infrastructure/queue/port"
	"skillswap/internal/infrastructure/realtime"
	chat "skillswap/internal/pkg/chat/application/domain"
	"skillswap/internal/pkg/chat/application/dispatch"
	"skillswap/internal/pkg/chat/application/task"
	"skillswap/internal/pkg/chat/application/usecase"
)

// ChatSocketController handles the websocket endpoint: the single
// per-user connection that multiplexes room traffic, typing signals, and
// notification pushes.
type ChatSocketController struct {
	verifier   authport.TokenVerifier
	registry   *realtime.Registry
	rooms      *realtime.Rooms
	dispatcher *dispatch.MessageDispatcher
	joinUC     *usecase.JoinConversationUseCase
	queue      queueport.Client

	inflightTimeout time.Duration
}

func NewChatSocketController(
	verifier authport.TokenVerifier,
	registry *realtime.Registry,
	rooms *realtime.Rooms,
	dispatcher *dispatch.MessageDispatcher,
	joinUC *usecase.JoinConversationUseCase,
	queue queueport.Client,
) *ChatSocketController {
	return &ChatSocketController{
		verifier:        verifier,
		registry:        registry,
		rooms:           rooms,
		dispatcher:      dispatcher,
		joinUC:          joinUC,
		queue:           queue,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when the gateway
		// gets a CORS policy.
		return true
	},
}

type roomEventData struct {
	ConversationID string `json:"conversationId"`
}

type messageEventData struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
}

type typingEventData struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

type presenceEventData struct {
	UserID string `json:"userId"`
}

type errorEventData struct {
	Message string `json:"message"`
}

const defaultReadTimeout = 60 * time.Second

// Handle authenticates the credential before upgrading; an invalid token is
// rejected with 401 over plain HTTP. After the upgrade the connection is
// attached to the presence registry and frames are processed until the
// client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			if header := c.GetHeader("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
				token = header[7:]
			}
		}
		userID, err := ctl.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.registry.Attach(conn)
		ctl.announcePresence(realtime.EventUserOnline, userID)
		ctl.touchPresence(userID)

		defer func() {
			ctl.rooms.DropConnection(conn)
			// A stale detach means a newer connection replaced this one; the
			// user is still online and no offline event goes out.
			if ctl.registry.Detach(conn) {
				ctl.announcePresence(realtime.EventUserOffline, conn.UserID)
				ctl.touchPresence(conn.UserID)
			}
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				return
			}

			ev, err := realtime.DecodeEvent(data)
			if err != nil {
				ctl.replyError(conn, "invalid event frame")
				continue
			}

			switch ev.Name {
			case realtime.EventJoin:
				ctl.handleJoin(c, conn, ev)
			case realtime.EventLeave:
				ctl.handleLeave(conn, ev)
			case realtime.EventMessage:
				ctl.handleMessage(c, conn, ev)
			case realtime.EventTyping, realtime.EventTypingStop:
				ctl.handleTyping(conn, ev)
			default:
				ctl.replyError(conn, "unknown event")
			}
		}
	}
}

func (ctl *ChatSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, ev realtime.Event) {
	var data roomEventData
	if err := ev.Bind(&data); err != nil || data.ConversationID == "" {
		ctl.replyError(conn, "conversationId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	err := ctl.joinUC.Execute(ctx, usecase.JoinConversationInput{
		ConversationID: data.ConversationID,
		UserID:         conn.UserID,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}
	ctl.rooms.Join(data.ConversationID, conn)
}

func (ctl *ChatSocketController) handleLeave(conn *realtime.Connection, ev realtime.Event) {
	var data roomEventData
	if err := ev.Bind(&data); err != nil || data.ConversationID == "" {
		ctl.replyError(conn, "conversationId is required")
		return
	}
	ctl.rooms.Leave(data.ConversationID, conn)
}

func (ctl *ChatSocketController) handleMessage(c *gin.Context, conn *realtime.Connection, ev realtime.Event) {
	var data messageEventData
	if err := ev.Bind(&data); err != nil || data.ConversationID == "" {
		ctl.replyError(conn, "conversationId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	if _, err := ctl.dispatcher.Send(ctx, data.ConversationID, conn.UserID, data.Content); err != nil {
		ctl.handleUseCaseError(conn, err)
	}
}

// handleTyping relays the typing signal to the other room members without
// touching storage. The event name is forwarded as received so start and
// stop stay distinct.
func (ctl *ChatSocketController) handleTyping(conn *realtime.Connection, ev realtime.Event) {
	var data roomEventData
	if err := ev.Bind(&data); err != nil || data.ConversationID == "" {
		ctl.replyError(conn, "conversationId is required")
		return
	}

	payload, err := realtime.EncodeEvent(ev.Name, typingEventData{
		ConversationID: data.ConversationID,
		UserID:         conn.UserID,
	})
	if err != nil {
		return
	}
	ctl.rooms.Broadcast(data.ConversationID, payload, conn.UserID)
}

// announcePresence tells every other connected user about an online/offline
// transition.
func (ctl *ChatSocketController) announcePresence(event, userID string) {
	payload, err := realtime.EncodeEvent(event, presenceEventData{UserID: userID})
	if err != nil {
		return
	}
	ctl.registry.BroadcastExcept(userID, payload)
}

// touchPresence enqueues the last-online bookkeeping task. Best-effort: a
// full queue or dead broker must never block connect or disconnect.
func (ctl *ChatSocketController) touchPresence(userID string) {
	if ctl.queue == nil {
		return
	}
	t, err := task.NewTouchPresenceTask(userID, time.Now().UTC())
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ctl.queue.Enqueue(ctx, t, queueport.EnqueueOption{Queue: "presence", MaxRetry: 3}); err != nil {
		log.Printf("failed to enqueue presence touch for %s: %v", userID, err)
	}
}

func (ctl *ChatSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "unexpected persistence error")
	case errors.Is(err, chat.ErrConversationNotFound):
		ctl.replyError(conn, "conversation not found")
	case errors.Is(err, chat.ErrNotParticipant):
		ctl.replyError(conn, "not a participant in this conversation")
	default:
		ctl.replyError(conn, err.Error())
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, message string) {
	_ = conn.SendEvent(realtime.EventError, errorEventData{Message: message})
}
