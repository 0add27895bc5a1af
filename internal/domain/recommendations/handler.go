package recommendations

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"petmatch/internal/domain/pets"
	"petmatch/internal/middleware"
	"petmatch/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta los endpoints. limiter se aplica solo acá (cálculo caro); puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, limiter func(http.Handler) http.Handler) {
	r.Group(func(gr chi.Router) {
		if limiter != nil {
			gr.Use(limiter)
		}
		gr.Get("/users/{userID}/recommendations", userRecommendationsHandler(svc))
		gr.Get("/me/recommendations", myRecommendationsHandler(svc))
	})
}

type recommendationItem struct {
	pets.PetResponse
	RecommendationScore float64  `json:"recommendation_score"`
	Reasons             []string `json:"reasons"`
}

type recommendationsResponse struct {
	Recommendations []recommendationItem `json:"recommendations"`
	Count           int                  `json:"count"`
	Message         string               `json:"message,omitempty"`
}

// userRecommendationsHandler godoc
// @Summary Recomendaciones de mascotas
// @Description Devuelve mascotas en adopción ordenadas por compatibilidad con el cuestionario y afinidad con los "me gusta" del usuario, con un tope de diversidad por tipo y tamaño. Cada item trae `recommendation_score` (1 decimal) y hasta 3 `reasons`. Si no hay candidatos devuelve 200 con lista vacía y `message`. Solo el mismo usuario.
// @Tags recommendations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param userID path string true "ID del usuario"
// @Param limit query int false "Cantidad (1-50). Por defecto 10; valores mayores se recortan a 50"
// @Success 200 {object} recommendationsResponse
// @Failure 400 {string} string "limit must be a positive integer"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "user not found"
// @Failure 429 {string} string "too many requests"
// @Failure 500 {string} string "internal error"
// @Router /users/{userID}/recommendations [get]
func userRecommendationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		userID := chi.URLParam(r, "userID")
		if userID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		serveRecommendations(w, r, svc, userID)
	}
}

// myRecommendationsHandler godoc
// @Summary Mis recomendaciones
// @Description Igual que /users/{userID}/recommendations para el usuario autenticado.
// @Tags recommendations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Cantidad (1-50). Por defecto 10"
// @Success 200 {object} recommendationsResponse
// @Failure 400 {string} string "limit must be a positive integer"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user not found"
// @Failure 500 {string} string "internal error"
// @Router /me/recommendations [get]
func myRecommendationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		serveRecommendations(w, r, svc, claims.UserID)
	}
}

func serveRecommendations(w http.ResponseWriter, r *http.Request, svc *Service, userID string) {
	limit, err := httpx.QueryInt(r, "limit", DefaultLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := svc.Recommend(r.Context(), userID, limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, context.Canceled):
			// el cliente se fue; no hay a quién responder
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toResponse(res))
}

func toResponse(res Result) recommendationsResponse {
	out := recommendationsResponse{
		Recommendations: make([]recommendationItem, 0, len(res.Items)),
		Message:         res.Message,
	}
	for _, it := range res.Items {
		reasons := it.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		out.Recommendations = append(out.Recommendations, recommendationItem{
			PetResponse:         pets.ToResponse(it.Pet),
			RecommendationScore: roundScore(it.Score),
			Reasons:             reasons,
		})
	}
	out.Count = len(out.Recommendations)
	return out
}

// roundScore deja un decimal.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
