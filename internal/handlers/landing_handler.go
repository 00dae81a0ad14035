package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/cache"
	"github.com/barberdev/barberdev-web/internal/domain/appointment"
	"github.com/barberdev/barberdev-web/internal/domain/user"
	"github.com/barberdev/barberdev-web/internal/flash"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/session"
)

// ======================================================
// HANDLER
// ======================================================

// LandingHandler renders the public home page: the service and barber
// sliders are reference data served through the catalog cache, so the page
// stays up even when the backend is slow.
type LandingHandler struct {
	catalog *cache.Catalog
	store   *session.Store
	logger  *logging.Logger
}

func NewLandingHandler(catalog *cache.Catalog, store *session.Store, logger *logging.Logger) *LandingHandler {
	return &LandingHandler{
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

// ======================================================
// HOME
// ======================================================

func (h *LandingHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	haircuts, err := h.catalog.Haircuts(ctx)
	if err != nil {
		h.logger.Warn("landing: haircuts unavailable", "error", err)
		haircuts = []appointment.Haircut{}
	}

	barbers, err := h.catalog.Barbers(ctx)
	if err != nil {
		h.logger.Warn("landing: barbers unavailable", "error", err)
		barbers = []user.Profile{}
	}

	sess := h.store.Load(c)

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Haircuts": haircuts,
		"Barbers":  barbers,
		"Session":  sess,
		"Flash":    flash.Pop(c),
	})
}
