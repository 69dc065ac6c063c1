package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/auth"
	"github.com/carkeep/car-registry/internal/config"
	"github.com/carkeep/car-registry/internal/httperr"
	"github.com/carkeep/car-registry/internal/httpresp"
	"github.com/carkeep/car-registry/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" || req.Password == "" {
		httperr.BadRequest(c, "name_email_password_required")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password")
		return
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		IsAdmin:      req.IsAdmin,
		PhoneNumber:  req.PhoneNumber,
	}

	if err := h.db.Create(&user).Error; err != nil {
		log.Printf("failed to create user: %v", err)
		httperr.Internal(c, "failed_to_create_user")
		return
	}

	httpresp.Created(c, "User registered", user.ID)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		// Unknown email and wrong password answer identically.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials")
			return
		}
		httperr.Internal(c, "internal_error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials")
		return
	}

	token, err := auth.IssueToken(h.config.JWTSecret, user.ID, user.IsAdmin)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token")
		return
	}

	httpresp.OK(c, gin.H{"token": token})
}
