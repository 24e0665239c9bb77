package adaptor

import (
	"encoding/json"
	"net/http"

	"flix/internal/dto/request"
	"flix/internal/usecase"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

// Submit handles POST /submit_review/{id} with body fields rating and text
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movieID := chi.URLParam(r, "id")

	outcome, err := h.service.Submit(r.Context(), userID, movieID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "submit review")
		return
	}

	message := "Your review has been posted!"
	if outcome == usecase.ReviewUpdated {
		message = "Your review has been updated!"
	}

	utils.ResponseSuccess(w, message, map[string]string{"outcome": string(outcome)})
}
