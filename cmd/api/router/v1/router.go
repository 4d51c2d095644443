package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	authport "skillswap/internal/infrastructure/auth/port"
	cacheport "skillswap/internal/infrastructure/cache/port"
	queueport "skillswap/internal/infrastructure/queue/port"
	"skillswap/internal/infrastructure/realtime"
	httpHandler "skillswap/internal/pkg/chat/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(
	r *gin.Engine,
	pool *pgxpool.Pool,
	cache cacheport.Cache,
	queue queueport.Client,
	verifier authport.TokenVerifier,
	registry *realtime.Registry,
	rooms *realtime.Rooms,
) {
	v1 := r.Group("/api/v1")
	// Pass the infrastructure handles down to the HTTP layer
	httpHandler.RegisterRoutes(v1, pool, cache, queue, verifier, registry, rooms)
}
