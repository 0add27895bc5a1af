package intakes

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
	r.Route("/users/{userID}/intake", func(ir chi.Router) {
		ir.Put("/", submitIntakeHandler(svc))
		ir.Get("/", getIntakeHandler(svc))
	})
}

type intakeRequest struct {
	IsHouse             bool   `json:"is_house"`
	HasYard             bool   `json:"has_yard"`
	HasSecurity         bool   `json:"has_security"`
	HadPetsBefore       bool   `json:"had_pets_before"`
	HasCurrentPets      bool   `json:"has_current_pets"`
	HasAllergies        bool   `json:"has_allergies"`
	HasChildren         bool   `json:"has_children"`
	WillNeuterVaccinate bool   `json:"will_neuter_vaccinate"`
	HoursAlonePerDay    int    `json:"hours_alone_per_day" validate:"min=0,max=24"`
	SleepingLocation    string `json:"sleeping_location" validate:"omitempty,oneof=inside outside"`
}

type intakeResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	IsHouse             bool      `json:"is_house"`
	HasYard             bool      `json:"has_yard"`
	HasSecurity         bool      `json:"has_security"`
	HadPetsBefore       bool      `json:"had_pets_before"`
	HasCurrentPets      bool      `json:"has_current_pets"`
	HasAllergies        bool      `json:"has_allergies"`
	HasChildren         bool      `json:"has_children"`
	WillNeuterVaccinate bool      `json:"will_neuter_vaccinate"`
	HoursAlonePerDay    int       `json:"hours_alone_per_day"`
	SleepingLocation    string    `json:"sleeping_location,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// submitIntakeHandler godoc
// @Summary Guardar cuestionario de adopción
// @Description Crea o reemplaza el cuestionario del usuario. Solo el mismo usuario puede escribirlo.
// @Tags intakes
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param userID path string true "ID del usuario"
// @Param payload body intakeRequest true "Respuestas del cuestionario"
// @Success 200 {object} intakeResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /users/{userID}/intake [put]
func submitIntakeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authorizeSelf(w, r)
		if !ok {
			return
		}

		var req intakeRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out, err := svc.Submit(r.Context(), userID, SubmitInput{
			IsHouse:             req.IsHouse,
			HasYard:             req.HasYard,
			HasSecurity:         req.HasSecurity,
			HadPetsBefore:       req.HadPetsBefore,
			HasCurrentPets:      req.HasCurrentPets,
			HasAllergies:        req.HasAllergies,
			HasChildren:         req.HasChildren,
			WillNeuterVaccinate: req.WillNeuterVaccinate,
			HoursAlonePerDay:    req.HoursAlonePerDay,
			SleepingLocation:    req.SleepingLocation,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toIntakeResponse(out))
	}
}

func getIntakeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authorizeSelf(w, r)
		if !ok {
			return
		}

		out, err := svc.GetByUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "intake not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toIntakeResponse(out))
	}
}

// authorizeSelf exige que el usuario autenticado sea el del path.
func authorizeSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	userID := chi.URLParam(r, "userID")
	if userID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

func toIntakeResponse(in Intake) intakeResponse {
	return intakeResponse{
		ID:                  in.ID,
		UserID:              in.UserID,
		IsHouse:             in.IsHouse,
		HasYard:             in.HasYard,
		HasSecurity:         in.HasSecurity,
		HadPetsBefore:       in.HadPetsBefore,
		HasCurrentPets:      in.HasCurrentPets,
		HasAllergies:        in.HasAllergies,
		HasChildren:         in.HasChildren,
		WillNeuterVaccinate: in.WillNeuterVaccinate,
		HoursAlonePerDay:    in.HoursAlonePerDay,
		SleepingLocation:    string(in.SleepingLocation),
		CreatedAt:           in.CreatedAt,
		UpdatedAt:           in.UpdatedAt,
	}
}
