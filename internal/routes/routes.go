package routes

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/entreplan/planner/internal/auth"
	"github.com/entreplan/planner/internal/config"
	"github.com/entreplan/planner/internal/handlers"
	"github.com/entreplan/planner/internal/logging"
	"github.com/entreplan/planner/internal/planner"
	"github.com/entreplan/planner/internal/qr"
	"github.com/entreplan/planner/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// qrImageSize is the pixel size of generated planner QR codes.
const qrImageSize = 256

// PlannerDeps are the collaborators the planner API routes need.
type PlannerDeps struct {
	Sessions        *session.Store
	Decoder         qr.Decoder
	DefaultPlatform string
}

// RegisterPlannerRoutes sets up the planner API routes.
// HTTP concerns are handled here, while business logic is delegated to the
// handlers and planner packages.
func RegisterPlannerRoutes(authCfg auth.AuthConfig, rateCfg config.RateLimitConfig, deps PlannerDeps) func(r chi.Router) {
	return func(r chi.Router) {
		r.Route("/api/v1", func(r chi.Router) {
			if rateCfg.Requests > 0 {
				r.Use(httprate.LimitByIP(rateCfg.Requests, rateCfg.Window))
			}
			r.Use(auth.JWTMiddleware(authCfg))

			r.Route("/plans", func(r chi.Router) {
				r.Post("/", generatePlanRoute(deps))
				r.Post("/export", exportPlanRoute(deps))
			})

			r.Route("/qr", func(r chi.Router) {
				r.Post("/", generateQRRoute())
				r.Post("/decode", decodeQRRoute(deps.Decoder))
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/templates", catalogRoute(func() any { return planner.Templates() }))
				r.Get("/automations", catalogRoute(func() any { return planner.Automations() }))
				r.Get("/platforms", catalogRoute(func() any { return planner.Platforms() }))
			})

			r.Get("/trends/demo", demoTrendsRoute())

			r.Route("/session/payload", func(r chi.Router) {
				r.Get("/", getSessionPayloadRoute(deps.Sessions))
				r.Put("/", putSessionPayloadRoute(deps.Sessions))
				r.Delete("/", deleteSessionPayloadRoute(deps.Sessions))
			})
		})
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func generatePlanRoute(deps PlannerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		var req handlers.PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logging.Log(ctx).Layer("routes").Op("generatePlan").User(userID).Err(err).
				Error("failed to decode request body")
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		plan, err := handlers.GeneratePlan(ctx, &req, deps.DefaultPlatform)
		if err != nil {
			var validationErr *handlers.ValidationError
			if errors.As(err, &validationErr) {
				logging.Log(ctx).Layer("routes").Op("generatePlan").User(userID).Err(err).
					Warn("invalid plan request")
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			logging.Log(ctx).Layer("routes").User(userID).Err(err).Error("failed to generate plan")
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// Remember the payload so the user can regenerate without resending it.
		if deps.Sessions != nil && len(req.Payload) > 0 {
			deps.Sessions.Put(userID, req.Payload)
		}

		logging.Log(ctx).Layer("routes").Op("generatePlan").User(userID).
			Platform(plan.Platform).Week(plan.WeekStart).Int("status_code", http.StatusOK).
			Info("weekly plan generated successfully")
		respondWithJSON(w, http.StatusOK, plan)
	}
}

func exportPlanRoute(deps PlannerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		var req handlers.PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		plan, err := handlers.GeneratePlan(ctx, &req, deps.DefaultPlatform)
		if err != nil {
			var validationErr *handlers.ValidationError
			if errors.As(err, &validationErr) {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			logging.Log(ctx).Layer("routes").User(userID).Err(err).Error("failed to export plan")
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		filename := fmt.Sprintf("weekly_prompts_%s.csv", plan.WeekStart.Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		if err := planner.WriteCSV(w, *plan); err != nil {
			logging.Log(ctx).Layer("routes").Op("exportPlan").User(userID).Err(err).
				Error("failed to write plan csv")
		}
	}
}

type qrRequest struct {
	DestinationURL string `json:"destination_url"`
	Payload        string `json:"payload,omitempty"`
}

type qrResponse struct {
	FinalURL  string `json:"final_url"`
	PNGBase64 string `json:"png_base64"`
}

func generateQRRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		var req qrRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.DestinationURL == "" {
			respondWithError(w, http.StatusBadRequest, "destination_url is required")
			return
		}

		finalURL, err := qr.FinalURL(req.DestinationURL, req.Payload)
		if err != nil {
			logging.Log(ctx).Layer("routes").Op("generateQR").User(userID).Err(err).
				Warn("invalid destination url")
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		png, err := qr.EncodePNG(finalURL, qrImageSize)
		if err != nil {
			// QR image generation failing must not take the plan features with it;
			// report and move on.
			logging.Log(ctx).Layer("routes").Op("generateQR").User(userID).Err(err).
				Error("qr image generation failed")
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		logging.Log(ctx).Layer("routes").Op("generateQR").User(userID).
			Str("final_url", finalURL).Int("status_code", http.StatusOK).
			Info("qr code generated successfully")
		respondWithJSON(w, http.StatusOK, qrResponse{
			FinalURL:  finalURL,
			PNGBase64: base64.StdEncoding.EncodeToString(png),
		})
	}
}

type decodeRequest struct {
	ImageBase64 string `json:"image_base64"`
}

func decodeQRRoute(decoder qr.Decoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		var req decodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		imageBytes, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "image_base64 is not valid base64")
			return
		}

		text, err := decoder.Decode(imageBytes)
		if err != nil {
			if errors.Is(err, qr.ErrDecodeUnavailable) {
				logging.Log(ctx).Layer("routes").Op("decodeQR").User(userID).
					Info("qr decode capability unavailable")
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  "QR decoding is not available; paste the payload manually",
				})
				return
			}
			logging.Log(ctx).Layer("routes").Op("decodeQR").User(userID).Err(err).
				Warn("failed to decode qr image")
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"text": text})
	}
}

func catalogRoute(items func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, items())
	}
}

func demoTrendsRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at := time.Now().UTC()
		if v := r.URL.Query().Get("date"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "date must be an ISO date (YYYY-MM-DD)")
				return
			}
			at = parsed
		}
		respondWithJSON(w, http.StatusOK, map[string]any{"trends": planner.DemoTrends(at)})
	}
}

func getSessionPayloadRoute(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())

		payload, err := sessions.Get(userID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "No payload stored")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]json.RawMessage{"payload": payload})
	}
}

func putSessionPayloadRoute(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		var req struct {
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if _, err := handlers.ParsePayload(req.Payload); err != nil {
			logging.Log(ctx).Layer("routes").Op("putSessionPayload").User(userID).Err(err).
				Warn("rejected invalid session payload")
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		sessions.Put(userID, req.Payload)
		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Payload stored"})
	}
}

func deleteSessionPayloadRoute(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserIDFromContext(r.Context())
		sessions.Delete(userID)
		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Payload cleared"})
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}
