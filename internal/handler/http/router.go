package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/omanjaya/attendancedev-sub009/internal/handler/http/middleware"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/jwt"
)

type RouterConfig struct {
	AppName        string
	AppVersion     string
	Environment    string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	faceHandler FaceHandler,
	livenessHandler LivenessHandler,
	attendanceHandler AttendanceHandler,
	geofenceHandler GeofenceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.AppVersion),
		slog.String("env", cfg.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/face", func(r chi.Router) {
				r.Post("/register", faceHandler.Register)
				r.Put("/", faceHandler.Update)
				r.Delete("/{employeeID}", faceHandler.Delete)
				r.Post("/verify", faceHandler.Verify)
				r.Post("/verify/batch", faceHandler.BatchVerify)
				r.Get("/statistics", faceHandler.Statistics)
			})

			r.Route("/liveness", func(r chi.Router) {
				r.Get("/gestures", livenessHandler.Instructions)
				r.Route("/sessions", func(r chi.Router) {
					r.Post("/", livenessHandler.StartSession)
					r.Route("/{sessionID}", func(r chi.Router) {
						r.Get("/", livenessHandler.GetSession)
						r.Post("/signals", livenessHandler.SubmitSignal)
						r.Post("/abort", livenessHandler.Abort)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/status", attendanceHandler.GetStatus)
				r.Get("/history", attendanceHandler.GetHistory)
				r.Get("/statistics", attendanceHandler.GetSummary)
			})

			r.Route("/geofence/zones", func(r chi.Router) {
				r.Get("/", geofenceHandler.ListZones)
				r.Post("/", geofenceHandler.CreateZone)
				r.Put("/{zoneID}", geofenceHandler.UpdateZone)
				r.Delete("/{zoneID}", geofenceHandler.DeleteZone)
			})
		})
	})

	return r
}
