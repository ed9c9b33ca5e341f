package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/classic-cipher-go/internal/auth"
	"github.com/classic-cipher-go/internal/cipher"
	"github.com/classic-cipher-go/internal/config"
	"github.com/classic-cipher-go/internal/dao"
	"github.com/classic-cipher-go/internal/errors"
)

// APIHandler handles /api/* routes
type APIHandler struct {
	cfg      *config.Config
	jwtAuth  *auth.JWTAuth
	users    *dao.UserDAO
	profiles dao.ProfileStore
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(cfg *config.Config, users *dao.UserDAO, profiles dao.ProfileStore) *APIHandler {
	expireHours := cfg.JWTExpire
	if expireHours <= 0 {
		expireHours = 24
	}
	return &APIHandler{
		cfg:      cfg,
		jwtAuth:  auth.NewJWTAuth(cfg.JWTSecret, time.Duration(expireHours)*time.Hour),
		users:    users,
		profiles: profiles,
	}
}

// JWTAuth exposes the token validator for the auth middleware
func (h *APIHandler) JWTAuth() *auth.JWTAuth {
	return h.jwtAuth
}

// Login handles user authentication and issues a JWT
func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, errors.NewBadRequestWithCause("Invalid request body", err))
		return
	}

	if err := h.users.Validate(req.Username, req.Password); err != nil {
		RespondError(c, errors.NewUnauthorized("Invalid username or password"))
		return
	}

	token, err := h.jwtAuth.GenerateToken(req.Username)
	if err != nil {
		RespondError(c, errors.NewInternalWithCause("Failed to issue token", err))
		return
	}

	RespondSuccess(c, gin.H{
		"username": req.Username,
		"token":    token,
	})
}

// UpdatePassword updates the authenticated user's password
func (h *APIHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, errors.NewBadRequestWithCause("Invalid request body", err))
		return
	}

	if len(req.NewPassword) < 8 {
		RespondError(c, errors.NewBadRequest("New password must be at least 8 characters"))
		return
	}
	if err := h.users.Validate(req.Username, req.Password); err != nil {
		RespondError(c, errors.NewUnauthorized("Invalid username or password"))
		return
	}
	if err := h.users.UpdatePassword(req.Username, req.NewPassword); err != nil {
		RespondError(c, errors.NewInternalWithCause("Failed to update password", err))
		return
	}

	log.Info().Str("username", req.Username).Msg("Password updated")
	RespondSuccessMsg(c, "password updated")
}

// ListCiphers returns the registered cipher kinds
func (h *APIHandler) ListCiphers(c *gin.Context) {
	RespondSuccess(c, gin.H{"ciphers": cipher.List()})
}

// ListProfiles returns all stored profiles
func (h *APIHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profiles.GetAll()
	if err != nil {
		RespondError(c, errors.NewInternalWithCause("Failed to list profiles", err))
		return
	}
	RespondSuccess(c, gin.H{"profiles": profiles})
}

// GetProfile returns a single profile by name
func (h *APIHandler) GetProfile(c *gin.Context) {
	name := c.Param("name")
	profile, ok := h.profiles.Get(name)
	if !ok {
		RespondError(c, errors.NewNotFound("Profile not found: "+name))
		return
	}
	RespondSuccess(c, profile)
}

// SaveProfile validates and stores a profile. The key is validated against
// the chosen cipher kind before anything is written.
func (h *APIHandler) SaveProfile(c *gin.Context) {
	var profile dao.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		RespondError(c, errors.NewBadRequestWithCause("Invalid request body", err))
		return
	}

	if profile.Name == "" {
		RespondError(c, errors.NewBadRequest("Profile name must not be empty"))
		return
	}
	if profile.Workers < 1 {
		RespondError(c, errors.NewBadRequest("Worker count must be at least 1"))
		return
	}
	if _, err := cipher.New(cipher.Kind(profile.Cipher), profile.Key); err != nil {
		RespondError(c, errors.NewInvalidKeyWithCause("Profile rejected", err))
		return
	}

	if err := h.profiles.Set(&profile); err != nil {
		RespondError(c, errors.NewInternalWithCause("Failed to save profile", err))
		return
	}

	log.Info().Str("profile", profile.Name).Str("cipher", profile.Cipher).Msg("Profile saved")
	RespondSuccessMsg(c, "profile saved")
}

// DeleteProfile removes a profile by name
func (h *APIHandler) DeleteProfile(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.profiles.Get(name); !ok {
		RespondError(c, errors.NewNotFound("Profile not found: "+name))
		return
	}
	if err := h.profiles.Delete(name); err != nil {
		RespondError(c, errors.NewInternalWithCause("Failed to delete profile", err))
		return
	}
	RespondSuccessMsg(c, "profile deleted")
}
