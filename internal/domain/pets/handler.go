package pets

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
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))

		// Solo el dueño publica / retira la mascota
		pr.Patch("/{petID}/availability", setAvailabilityHandler(svc))
	})
}

type createPetRequest struct {
	Name          string   `json:"name" validate:"required,max=120"`
	Type          string   `json:"type" validate:"required,max=40"`
	Size          string   `json:"size" validate:"max=20"`
	Breed         string   `json:"breed" validate:"max=80"`
	Gender        string   `json:"gender" validate:"max=20"`
	Color         string   `json:"color" validate:"max=40"`
	Description   string   `json:"description" validate:"max=4000"`
	Compatibility []string `json:"compatibility" validate:"max=10,dive,max=40"`
	Sterilized    string   `json:"sterilized"`
	Vaccinated    string   `json:"vaccinated"`
	AgeYears      *int     `json:"age_years" validate:"omitempty,min=0,max=40"`
	AgeMonths     *int     `json:"age_months" validate:"omitempty,min=0,max=11"`
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// PetResponse es la vista pública de una mascota; recommendations la reutiliza.
type PetResponse struct {
	ID                   string    `json:"id"`
	OwnerUserID          string    `json:"owner_user_id"`
	Name                 string    `json:"name"`
	Type                 string    `json:"type"`
	Size                 string    `json:"size,omitempty"`
	Breed                string    `json:"breed,omitempty"`
	Gender               string    `json:"gender,omitempty"`
	Color                string    `json:"color,omitempty"`
	Description          string    `json:"description,omitempty"`
	Compatibility        []string  `json:"compatibility"`
	Sterilized           string    `json:"sterilized,omitempty"`
	Vaccinated           string    `json:"vaccinated,omitempty"`
	AgeYears             *int      `json:"age_years,omitempty"`
	AgeMonths            *int      `json:"age_months,omitempty"`
	AvailableForAdoption bool      `json:"available_for_adoption"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Publicar mascota en adopción
// @Description Crea una mascota cuyo dueño es el usuario autenticado. Queda disponible para adopción. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} PetResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:          req.Name,
			Type:          req.Type,
			Size:          req.Size,
			Breed:         req.Breed,
			Gender:        req.Gender,
			Color:         req.Color,
			Description:   req.Description,
			Compatibility: req.Compatibility,
			Sterilized:    req.Sterilized,
			Vaccinated:    req.Vaccinated,
			AgeYears:      req.AgeYears,
			AgeMonths:     req.AgeMonths,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, ToResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas en adopción
// @Description Lista mascotas disponibles para adopción, más nuevas primero. Público.
// @Tags pets
// @Produce json
// @Param type query string false "Filtrar por tipo (perro, gato, ...)"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Success 200 {array} PetResponse
// @Failure 400 {string} string "limit inválido"
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := httpx.QueryInt(r, "limit", defaultListLimit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListAvailable(r.Context(), AvailableFilter{
			Type:  Type(r.URL.Query().Get("type")),
			Limit: limit,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]PetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// setAvailabilityHandler godoc
// @Summary Cambiar disponibilidad
// @Description Marca la mascota como disponible o no para adopción. Solo el dueño.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body availabilityRequest true "Nuevo estado"
// @Success 200 {object} PetResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/availability [patch]
func setAvailabilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req availabilityRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.SetAvailability(r.Context(), chi.URLParam(r, "petID"), claims.UserID, *req.Available)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

func ToResponse(p Pet) PetResponse {
	compat := p.Compatibility
	if compat == nil {
		compat = []string{}
	}
	return PetResponse{
		ID:                   p.ID,
		OwnerUserID:          p.OwnerUserID,
		Name:                 p.Name,
		Type:                 string(p.Type),
		Size:                 string(p.Size),
		Breed:                p.Breed,
		Gender:               p.Gender,
		Color:                p.Color,
		Description:          p.Description,
		Compatibility:        compat,
		Sterilized:           string(p.Sterilized),
		Vaccinated:           string(p.Vaccinated),
		AgeYears:             p.AgeYears,
		AgeMonths:            p.AgeMonths,
		AvailableForAdoption: p.AvailableForAdoption,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
