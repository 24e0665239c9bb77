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

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

// AddMovie handles POST /admin/add
func (h *AdminHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.AddMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add movie")
		return
	}

	utils.ResponseCreated(w, "Movie \""+resp.Title+"\" added successfully!", resp)
}

// EditMovie handles POST /admin/edit/{id}
func (h *AdminHandler) EditMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movieID := chi.URLParam(r, "id")

	resp, err := h.service.EditMovie(r.Context(), movieID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "edit movie")
		return
	}

	utils.ResponseSuccess(w, "Movie \""+resp.Title+"\" updated successfully!", resp)
}
