package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/audit"
	"github.com/barberdev/barberdev-web/internal/availability"
	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/booking"
	"github.com/barberdev/barberdev-web/internal/cache"
	"github.com/barberdev/barberdev-web/internal/config"
	"github.com/barberdev/barberdev-web/internal/domain/user"
	"github.com/barberdev/barberdev-web/internal/handlers"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/middleware"
	"github.com/barberdev/barberdev-web/internal/session"
	"github.com/barberdev/barberdev-web/internal/timezone"
)

// availabilityDebounce coalesces rapid form edits before the availability
// endpoint is queried.
const availabilityDebounce = 300 * time.Millisecond

func RegisterRoutes(r *gin.Engine, cfg *config.Config, logger *logging.Logger) error {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	apiClient, err := backend.New(backend.Config{
		BaseURL: cfg.APIBaseURL,
		Logger:  logger.Logger,
	})
	if err != nil {
		return err
	}
	aiClient, err := backend.New(backend.Config{
		BaseURL: cfg.AIBaseURL,
		Timeout: 60 * time.Second, // analysis calls are slow
		Logger:  logger.Logger,
	})
	if err != nil {
		return err
	}

	loc := timezone.Location(cfg.Timezone)

	auth := backend.NewAuth(apiClient)
	users := backend.NewUsers(apiClient)
	haircuts := backend.NewHaircuts(apiClient)
	appointments := backend.NewAppointments(apiClient)
	ai := backend.NewAIAssist(aiClient)

	reference := cache.NewReference(cfg.RedisAddr, cfg.RedisPassword, cfg.ReferenceTTL, logger.Logger)
	catalog := cache.NewCatalog(haircuts, users, reference)
	enricher := backend.NewEnricher(users, haircuts)

	store := session.NewStore(users, cfg.CookieName, cfg.CookieSecure, logger.Logger)
	hub := availability.NewHub(appointments, availabilityDebounce, loc, logger.Logger)
	submitter := booking.NewSubmitter(appointments)
	auditDispatcher := audit.NewDispatcher(logger.Logger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(auth, store, logger)
	landingHandler := handlers.NewLandingHandler(catalog, store, logger)
	appointmentHandler := handlers.NewAppointmentHandler(
		appointments, catalog, enricher, submitter, hub, auditDispatcher, loc, logger,
	)
	dashboardHandler := handlers.NewDashboardHandler(
		appointments, users, catalog, enricher, auditDispatcher, loc, logger,
	)
	profileHandler := handlers.NewProfileHandler(users, store, logger)
	assistantHandler := handlers.NewAssistantHandler(ai, logger)

	// ======================================================
	// 🌐 PUBLIC
	// ======================================================
	r.GET("/", landingHandler.Home)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.POST("/api/auth/google", authHandler.GoogleLogin)
	r.POST("/api/assistant/chat", assistantHandler.Chat)
	r.POST("/api/assistant/analyze", assistantHandler.AnalyzeImage)

	// ======================================================
	// 🔒 AUTHENTICATED (ANY ROLE)
	// ======================================================
	authed := r.Group("/", middleware.RoleGate(store))
	{
		authed.GET("/logout", authHandler.Logout)

		authed.GET("/appointments", appointmentHandler.Index)
		authed.GET("/appointments/new", appointmentHandler.Form)
		authed.GET("/appointments/:id/edit", appointmentHandler.Form)

		authed.GET("/profile", profileHandler.Page)
		authed.POST("/profile", profileHandler.Update)
		authed.POST("/profile/photo", profileHandler.UploadPhoto)

		api := authed.Group("/api")
		{
			api.GET("/appointments", appointmentHandler.APIList)
			api.POST("/appointments", appointmentHandler.APISubmit)
			api.POST("/appointments/availability", appointmentHandler.APIAvailability)
			api.POST("/appointments/:id/cancel", appointmentHandler.APICancel)
			api.POST("/appointments/:id/complete", appointmentHandler.APIComplete)
			api.POST("/appointments/:id/payment-status", appointmentHandler.APIPaymentStatus)
		}
	}

	// ======================================================
	// ✂️ BARBER
	// ======================================================
	barber := r.Group("/dashboard", middleware.RoleGate(store, user.RoleBarber, user.RoleAdmin))
	{
		barber.GET("/barber", dashboardHandler.Barber)
	}

	// ======================================================
	// 🛠️ ADMIN
	// ======================================================
	admin := r.Group("/dashboard", middleware.RoleGate(store, user.RoleAdmin))
	{
		admin.GET("/admin", dashboardHandler.Admin)
		admin.POST("/admin/staff", dashboardHandler.CreateStaff)
	}

	return nil
}
