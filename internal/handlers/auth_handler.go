package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/flash"
	"github.com/barberdev/barberdev-web/internal/httperr"
	"github.com/barberdev/barberdev-web/internal/httpresp"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/session"
	"github.com/barberdev/barberdev-web/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	auth   *backend.Auth
	store  *session.Store
	logger *logging.Logger
}

func NewAuthHandler(auth *backend.Auth, store *session.Store, logger *logging.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		store:  store,
		logger: logger,
	}
}

// ======================================================
// PAGES
// ======================================================

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if sess := h.store.Load(c); sess != nil {
		c.Redirect(http.StatusFound, session.LandingRoute(sess.Identity.Role))
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": flash.Pop(c),
	})
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if sess := h.store.Load(c); sess != nil {
		c.Redirect(http.StatusFound, session.LandingRoute(sess.Identity.Role))
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flash": flash.Pop(c),
	})
}

// ======================================================
// LOGIN
// ======================================================

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Error(c, "Ingresa tu correo y contraseña")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	tok, err := h.auth.Login(c.Request.Context(), backend.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		h.logger.Warn("login failed", "email", form.Email, "error", err)
		flash.Error(c, loginFailureMessage(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	landing, err := h.store.Login(c, tok.Token)
	if err != nil {
		flash.Error(c, "Credenciales inválidas")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, landing)
}

func loginFailureMessage(err error) string {
	if ae, ok := backend.AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return "Credenciales inválidas"
}

// ======================================================
// REGISTER
// ======================================================

type registerForm struct {
	FullName    string `form:"fullName" binding:"required"`
	Email       string `form:"email" binding:"required"`
	Password    string `form:"password" binding:"required"`
	PhoneNumber string `form:"phoneNumber"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Error(c, "Completa todos los campos obligatorios")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if !validators.IsEmailDomainValid(form.Email) {
		flash.Error(c, "El dominio del correo no existe")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	tok, err := h.auth.Register(c.Request.Context(), backend.RegisterRequest{
		FullName:    form.FullName,
		Email:       form.Email,
		Password:    form.Password,
		PhoneNumber: form.PhoneNumber,
	})
	if err != nil {
		h.logger.Warn("register failed", "email", form.Email, "error", err)
		flash.Error(c, loginFailureMessage(err))
		c.Redirect(http.StatusFound, "/register")
		return
	}

	landing, err := h.store.Login(c, tok.Token)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	flash.Success(c, "Cuenta creada correctamente")
	c.Redirect(http.StatusFound, landing)
}

// ======================================================
// GOOGLE LOGIN (JSON)
// ======================================================

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Falta el token de Google")
		return
	}

	tok, err := h.auth.GoogleLogin(c.Request.Context(), backend.GoogleLoginRequest{
		IDToken: req.IDToken,
	})
	if err != nil {
		httperr.FromBackend(c, err)
		return
	}

	landing, err := h.store.Login(c, tok.Token)
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Credenciales inválidas")
		return
	}
	httpresp.OK(c, gin.H{"redirect": landing})
}

// ======================================================
// LOGOUT
// ======================================================

func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout(c)
	c.Redirect(http.StatusFound, "/login")
}
