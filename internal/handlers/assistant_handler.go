package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/httperr"
	"github.com/barberdev/barberdev-web/internal/httpresp"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

// AssistantHandler fronts the AI service: the style chat and the haircut
// photo analysis. Both are best-effort extras and never touch booking state.
type AssistantHandler struct {
	ai     *backend.AIAssist
	logger *logging.Logger
}

func NewAssistantHandler(ai *backend.AIAssist, logger *logging.Logger) *AssistantHandler {
	return &AssistantHandler{
		ai:     ai,
		logger: logger,
	}
}

// ======================================================
// CHAT
// ======================================================

type chatRequest struct {
	Message        string `json:"message" binding:"required"`
	Recommendation string `json:"recommendation"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Escribe un mensaje")
		return
	}

	reply, err := h.ai.Chat(c.Request.Context(), req.Message, req.Recommendation)
	if err != nil {
		h.logger.Warn("assistant chat failed", "error", err)
		httperr.FromBackend(c, err)
		return
	}
	httpresp.OK(c, gin.H{"reply": reply})
}

// ======================================================
// IMAGE ANALYSIS
// ======================================================

func (h *AssistantHandler) AnalyzeImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Selecciona una imagen")
		return
	}
	defer file.Close()

	userID := "anonymous"
	if sess := middleware.SessionFrom(c); sess != nil {
		userID = strconv.Itoa(sess.Identity.ID)
	}

	analysis, err := h.ai.AnalyzeImage(c.Request.Context(), header.Filename, file, userID)
	if err != nil {
		h.logger.Warn("image analysis failed", "error", err)
		httperr.FromBackend(c, err)
		return
	}
	httpresp.OK(c, analysis)
}
