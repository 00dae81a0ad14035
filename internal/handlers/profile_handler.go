package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/flash"
	"github.com/barberdev/barberdev-web/internal/httperr"
	"github.com/barberdev/barberdev-web/internal/httpresp"
	"github.com/barberdev/barberdev-web/internal/images"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/middleware"
	"github.com/barberdev/barberdev-web/internal/session"
)

// ======================================================
// HANDLER
// ======================================================

type ProfileHandler struct {
	users  *backend.Users
	store  *session.Store
	logger *logging.Logger
}

func NewProfileHandler(users *backend.Users, store *session.Store, logger *logging.Logger) *ProfileHandler {
	return &ProfileHandler{
		users:  users,
		store:  store,
		logger: logger,
	}
}

// ======================================================
// PAGE
// ======================================================

func (h *ProfileHandler) Page(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	// a credential the backend no longer honors means the session is over
	if err := h.store.Refresh(c.Request.Context(), sess); err != nil {
		h.logger.Info("session refresh failed", "user_id", sess.Identity.ID)
		h.store.Logout(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Session": sess,
		"Profile": sess.Profile,
		"Flash":   flash.Pop(c),
	})
}

// ======================================================
// UPDATE
// ======================================================

type profileForm struct {
	FullName    string `form:"fullName" binding:"required"`
	PhoneNumber string `form:"phoneNumber"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Error(c, "El nombre es obligatorio")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	_, err := h.users.Update(ctx, sess.Identity.ID, backend.UpdateUserRequest{
		FullName:    form.FullName,
		PhoneNumber: form.PhoneNumber,
	})
	if err != nil {
		h.logger.Warn("profile update failed", "user_id", sess.Identity.ID, "error", err)
		flash.Error(c, "No se pudo actualizar el perfil")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	flash.Success(c, "Perfil actualizado")
	c.Redirect(http.StatusFound, "/profile")
}

// ======================================================
// PHOTO UPLOAD
// ======================================================

// maxPhotoBytes bounds the raw upload before decoding.
const maxPhotoBytes = 10 << 20

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Selecciona una imagen")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		httperr.BadRequest(c, "file_too_large", "La imagen supera los 10 MB")
		return
	}

	// re-encode to a bounded webp before it leaves the server
	normalized, filename, err := images.Normalize(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "El archivo no es una imagen válida")
		return
	}

	ctx := backend.WithToken(c.Request.Context(), sess.Token)
	resp, err := h.users.UploadPhoto(ctx, sess.Identity.ID, filename, bytes.NewReader(normalized))
	if err != nil {
		httperr.FromBackend(c, err)
		return
	}

	httpresp.OK(c, gin.H{"profilePhotoUrl": resp.ProfilePhotoURL})
}
