package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/httperr"
	"github.com/carkeep/car-registry/internal/httpresp"
	"github.com/carkeep/car-registry/internal/models"
	"github.com/carkeep/car-registry/internal/policy"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// --------- Requests / responses ---------

type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	IsAdmin     *bool   `json:"is_admin,omitempty"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("name ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			IsAdmin:     u.IsAdmin,
		})
	}

	httpresp.OK(c, out)
}

func (h *UserHandler) Update(c *gin.Context) {
	caller := currentIdentity(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.NotFound(c, "not_found")
		return
	}

	if !policy.CanEditUser(caller, uint(targetID)) {
		httperr.Forbidden(c, "forbidden")
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(targetID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found")
			return
		}
		httperr.Internal(c, "internal_error")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*req.Email))
		if newEmail != user.Email {
			var count int64
			if err := h.db.Model(&models.User{}).
				Where("email = ? AND id != ?", newEmail, user.ID).
				Count(&count).Error; err != nil {
				httperr.Internal(c, "internal_error")
				return
			}
			if count > 0 {
				httperr.BadRequest(c, "email_already_exists")
				return
			}
		}
		user.Email = newEmail
	}

	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password")
			return
		}
		user.PasswordHash = string(hashed)
	}

	// Non-admins may not grant or revoke admin; their attempt is
	// silently ignored, not rejected.
	if req.IsAdmin != nil && policy.CanGrantAdmin(caller) {
		user.IsAdmin = *req.IsAdmin
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user")
		return
	}

	httpresp.Message(c, "User updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller := currentIdentity(c)

	if !policy.CanDeleteUser(caller) {
		httperr.Forbidden(c, "forbidden")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.NotFound(c, "not_found")
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(targetID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found")
			return
		}
		httperr.Internal(c, "internal_error")
		return
	}

	// The cars go first, in the same transaction: the store does not
	// enforce a cascade on its own.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Car{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_user")
		return
	}

	httpresp.Message(c, "User deleted")
}
