package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/omanjaya/attendancedev-sub009/internal/config"
	appHTTP "github.com/omanjaya/attendancedev-sub009/internal/handler/http"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/database"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/jwt"
	"github.com/omanjaya/attendancedev-sub009/internal/repository/postgresql"
	attendanceService "github.com/omanjaya/attendancedev-sub009/internal/service/attendance"
	authService "github.com/omanjaya/attendancedev-sub009/internal/service/auth"
	faceService "github.com/omanjaya/attendancedev-sub009/internal/service/face"
	geofenceService "github.com/omanjaya/attendancedev-sub009/internal/service/geofence"
	livenessService "github.com/omanjaya/attendancedev-sub009/internal/service/liveness"
	verificationService "github.com/omanjaya/attendancedev-sub009/internal/service/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	templateRepo := postgresql.NewFaceTemplateRepository(db)
	verificationLogRepo := postgresql.NewVerificationLogRepository(db)
	zoneRepo := postgresql.NewGeofenceZoneRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	matcher := faceService.NewMatcher()

	faceSvc := faceService.NewFaceService(matcher, templateRepo, verificationLogRepo, employeeRepo)
	geofenceSvc := geofenceService.NewGeofenceService(zoneRepo)
	livenessSvc := livenessService.NewEngine(livenessService.Policy{
		RequiredGestures: cfg.Verification.LivenessRequiredGestures,
		TimeoutMs:        cfg.Verification.LivenessTimeoutMs,
	}, nil, nil)
	orchestrator := verificationService.NewOrchestrator(matcher, geofenceSvc)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceService.Policy{
			FaceThreshold:    cfg.Verification.FaceThreshold,
			LivenessRequired: cfg.Verification.LivenessRequired,
			Location:         location,
			MinCheckOutGap:   time.Duration(cfg.Verification.MinCheckOutGapMinutes) * time.Minute,
		},
		nil,
		orchestrator,
		livenessSvc,
		attendanceRepo,
		scheduleRepo,
		templateRepo,
		zoneRepo,
		verificationLogRepo,
	)
	authSvc := authService.NewAuthService(employeeRepo, jwtSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			AppVersion:     cfg.App.Version,
			Environment:    cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtSvc,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewFaceHandler(faceSvc),
		appHTTP.NewLivenessHandler(livenessSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewGeofenceHandler(geofenceSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
