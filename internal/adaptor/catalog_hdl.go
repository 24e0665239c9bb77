package adaptor

import (
	"net/http"

	"flix/internal/dto/request"
	"flix/internal/dto/response"
	"flix/internal/usecase"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

// Landing handles GET / - the catalog landing payload with the genre list
// for the filter UI
func (h *CatalogHandler) Landing(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list genres")
		return
	}

	utils.ResponseSuccess(w, "Catalog", response.LandingResponse{
		App:    "flix",
		Genres: genres,
	})
}

// Search handles GET /api/movies?q=&genre=&page= - zero matches is an
// empty page, never an error
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := request.SearchRequest{
		Query: r.URL.Query().Get("q"),
		Genre: r.URL.Query().Get("genre"),
		Page:  utils.ParseInt(r.URL.Query().Get("page"), 1),
	}

	resp, err := h.service.SearchMovies(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved", resp)
}

// Detail handles GET /movie/{id}; watchlist membership only shows up for
// authenticated callers
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	var callerID *uuid.UUID
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		callerID = &userID
	}

	resp, err := h.service.GetMovieDetail(r.Context(), movieID, callerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie detail")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved", resp)
}
