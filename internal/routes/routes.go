package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/handlers"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
)

// Deps is everything the router needs, built once in main.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	Verifier middleware.TokenVerifier
	Users    middleware.UserFinder
	Limits   cache.Store

	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Doctors      *handlers.DoctorHandler
	Appointments *handlers.AppointmentHandler
	AI           *handlers.AIHandler
	Medicines    *handlers.MedicineHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log, cfg.IsProduction()),
		middleware.AccessLog(d.Log, cfg.IsProduction()),
		middleware.Metrics(),
		middleware.CORS(cfg.ClientURL),
		middleware.BodyLimit(middleware.MaxBodyBytes),
	)

	requireAuth := middleware.Auth(d.Verifier, d.Users, true)
	optionalAuth := middleware.Auth(d.Verifier, d.Users, false)
	compress := gzip.Gzip(gzip.DefaultCompression)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", d.Health.Health)

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.Auth.Register)
			auth.POST("/login", d.Auth.Login)
			auth.GET("/me", requireAuth, d.Auth.Me)
			auth.PUT("/update", requireAuth, d.Auth.Update)
			auth.GET("/activity", requireAuth, d.Auth.Activity)
		}

		// ------------------------------
		// DOCTORS
		// ------------------------------
		doctors := api.Group("/doctors", compress)
		{
			doctors.GET("", d.Doctors.List)
			doctors.GET("/meta/specialties", d.Doctors.Specialties)
			doctors.GET("/:id", d.Doctors.Get)
			doctors.GET("/:id/availability", d.Doctors.Availability)
		}

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := api.Group("/appointments", requireAuth)
		{
			appointments.GET("", d.Appointments.List)
			appointments.POST("", d.Appointments.Create)
			appointments.GET("/:id", d.Appointments.Get)
			appointments.PUT("/:id", d.Appointments.Update)
			appointments.DELETE("/:id", d.Appointments.Cancel)
		}

		// ------------------------------
		// AI
		// ------------------------------
		ai := api.Group("/ai")
		{
			ai.POST("/analyze",
				optionalAuth,
				middleware.RateLimit(d.Limits, cfg.AnalyzeRateLimit, cfg.AnalyzeRateWindow, "analyze", d.Log),
				d.AI.Analyze,
			)
			ai.GET("/consultations", requireAuth, d.AI.Consultations)
			ai.GET("/consultations/:id", requireAuth, d.AI.Consultation)
			ai.GET("/health", d.AI.Health)
		}

		// ------------------------------
		// MEDICINES
		// ------------------------------
		medicines := api.Group("/medicines", compress)
		{
			medicines.GET("", d.Medicines.Search)
			medicines.GET("/:id", d.Medicines.Get)
		}
	}

	r.NoRoute(handlers.NotFound)
}
