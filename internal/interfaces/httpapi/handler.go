package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/draft-league-board/internal/domain/standings"
	"github.com/riskibarqy/draft-league-board/internal/platform/logging"
	"github.com/riskibarqy/draft-league-board/internal/usecase"
)

// LeaderboardReader is the read side the handlers need.
type LeaderboardReader interface {
	Current(ctx context.Context) (usecase.Leaderboard, error)
	Status(ctx context.Context) usecase.Snapshot
	Table(ctx context.Context) (*standings.Table, error)
}

type Handler struct {
	leaderboard LeaderboardReader
	logger      *logging.Logger
}

func NewHandler(leaderboard LeaderboardReader, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leaderboard: leaderboard,
		logger:      logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
