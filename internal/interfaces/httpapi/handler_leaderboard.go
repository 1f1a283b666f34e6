package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/riskibarqy/draft-league-board/internal/render"
	"github.com/riskibarqy/draft-league-board/internal/usecase"
)

type statusDTO struct {
	Status        string     `json:"status"`
	Title         string     `json:"title"`
	Loading       bool       `json:"loading"`
	FailureText   string     `json:"failureText,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
	Version       uint64     `json:"version"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	LastAttemptAt *time.Time `json:"lastAttemptAt,omitempty"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	board, err := h.leaderboard.Current(ctx)
	if err != nil {
		if !errors.Is(err, usecase.ErrNotReady) {
			h.logger.ErrorContext(ctx, "project leaderboard failed", "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) GetLeaderboardText(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboardText")
	defer span.End()

	board, err := h.leaderboard.Current(ctx)
	if err != nil {
		mapped := mapError(err)
		writeText(ctx, w, mapped.HTTPStatus, err.Error()+"\n")
		return
	}

	writeTextHeader(ctx, w, http.StatusOK)
	if err := render.WriteText(w, board); err != nil {
		h.logger.WarnContext(ctx, "write leaderboard text failed", "error", err)
	}
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTable")
	defer span.End()

	table, err := h.leaderboard.Table(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, table)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatus")
	defer span.End()

	snap := h.leaderboard.Status(ctx)
	writeSuccess(ctx, w, http.StatusOK, statusDTO{
		Status:        string(snap.Status),
		Title:         snap.Title,
		Loading:       snap.Status == usecase.StatusLoading,
		FailureText:   snap.FailureText(),
		LastError:     snap.LastError,
		Version:       snap.Version,
		UpdatedAt:     optionalTime(snap.UpdatedAt),
		LastAttemptAt: optionalTime(snap.LastAttemptAt),
	})
}

func optionalTime(v time.Time) *time.Time {
	if v.IsZero() {
		return nil
	}
	utc := v.UTC()
	return &utc
}
