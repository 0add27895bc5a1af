package likes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"petmatch/internal/middleware"
	"petmatch/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/like", func(lr chi.Router) {
		lr.Post("/", likeHandler(svc))
		lr.Delete("/", unlikeHandler(svc))
	})

	r.Get("/me/likes", listMyLikesHandler(svc))
}

type likeResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PetID     string    `json:"pet_id"`
	CreatedAt time.Time `json:"created_at"`
}

// likeHandler godoc
// @Summary Marcar "me gusta"
// @Description Registra que el usuario autenticado marcó la mascota. Idempotente: 201 la primera vez, 200 si ya existía. No se puede marcar una mascota propia.
// @Tags likes
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 201 {object} likeResponse
// @Success 200 {object} likeResponse
// @Failure 400 {string} string "cannot like own pet"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/like [post]
func likeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		l, created, err := svc.Like(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrOwnPet):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrPetNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		httpx.WriteJSON(w, status, toLikeResponse(l))
	}
}

func unlikeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Unlike(r.Context(), claims.UserID, chi.URLParam(r, "petID")); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listMyLikesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]likeResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLikeResponse(l))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func toLikeResponse(l Like) likeResponse {
	return likeResponse{ID: l.ID, UserID: l.UserID, PetID: l.PetID, CreatedAt: l.CreatedAt}
}
