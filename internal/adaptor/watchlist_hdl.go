package adaptor

import (
	"net/http"

	"flix/internal/usecase"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WatchlistHandler struct {
	service usecase.WatchlistService
	log     *zap.Logger
}

func NewWatchlistHandler(service usecase.WatchlistService, log *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		log:     log,
	}
}

// Toggle handles POST /toggle_watchlist/{id}
func (h *WatchlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	movieID := chi.URLParam(r, "id")

	resp, err := h.service.Toggle(r.Context(), userID, movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle watchlist")
		return
	}

	message := "\"" + resp.MovieTitle + "\" removed from your watchlist."
	if resp.State == "added" {
		message = "\"" + resp.MovieTitle + "\" added to your watchlist!"
	}

	utils.ResponseSuccess(w, message, resp)
}

// List handles GET /watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	movies, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list watchlist")
		return
	}

	utils.ResponseSuccess(w, "Watchlist retrieved", movies)
}
