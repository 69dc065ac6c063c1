package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/httperr"
	"github.com/carkeep/car-registry/internal/httpresp"
	"github.com/carkeep/car-registry/internal/models"
	"github.com/carkeep/car-registry/internal/policy"
)

type CarHandler struct {
	db *gorm.DB
}

func NewCarHandler(db *gorm.DB) *CarHandler {
	return &CarHandler{db: db}
}

// --------- Requests / responses ---------

type CreateCarRequest struct {
	Color          string `json:"color"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           string `json:"year"`
	Notes          string `json:"notes"`
	DateAdded      string `json:"date_added"`
	ProjPickupDate string `json:"proj_pickup_date"`
	UserID         uint   `json:"user_id"`
}

type UpdateCarRequest struct {
	Color          *string `json:"color,omitempty"`
	Make           *string `json:"make,omitempty"`
	Model          *string `json:"model,omitempty"`
	Year           *string `json:"year,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	ProjPickupDate *string `json:"proj_pickup_date,omitempty"`
}

// CarResponse is a car enriched with its owner's name and email.
type CarResponse struct {
	ID             uint   `json:"id"`
	Color          string `json:"color"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           string `json:"year"`
	Notes          string `json:"notes"`
	DateAdded      string `json:"date_added"`
	ProjPickupDate string `json:"proj_pickup_date"`
	UserID         uint   `json:"user_id"`
	UserName       string `json:"user_name"`
	UserEmail      string `json:"user_email"`
}

// --------- Handlers ---------

func (h *CarHandler) List(c *gin.Context) {
	caller := currentIdentity(c)

	scope := policy.CarsVisibleTo(caller, strings.TrimSpace(c.Query("user_id")))

	q := h.db.Preload("Owner")
	if !scope.All {
		q = q.Where("user_id = ?", scope.OwnerID)
	}

	var cars []models.Car
	if err := q.Order("id DESC").Find(&cars).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cars")
		return
	}

	out := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		// Owner is the zero User when the lookup failed, which leaves
		// the enrichment fields empty.
		out = append(out, CarResponse{
			ID:             car.ID,
			Color:          car.Color,
			Make:           car.Make,
			Model:          car.Model,
			Year:           car.Year,
			Notes:          car.Notes,
			DateAdded:      car.DateAdded,
			ProjPickupDate: car.ProjPickupDate,
			UserID:         car.UserID,
			UserName:       car.Owner.Name,
			UserEmail:      car.Owner.Email,
		})
	}

	httpresp.OK(c, out)
}

func (h *CarHandler) Create(c *gin.Context) {
	caller := currentIdentity(c)

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	carMake := strings.TrimSpace(req.Make)
	carModel := strings.TrimSpace(req.Model)
	if carMake == "" || carModel == "" {
		httperr.BadRequest(c, "make_and_model_required")
		return
	}

	ownerID := policy.CarOwnerForCreate(caller, req.UserID)
	if ownerID != caller.UserID {
		var count int64
		if err := h.db.Model(&models.User{}).Where("id = ?", ownerID).Count(&count).Error; err != nil {
			httperr.Internal(c, "internal_error")
			return
		}
		if count == 0 {
			httperr.NotFound(c, "user_not_found")
			return
		}
	}

	dateAdded := strings.TrimSpace(req.DateAdded)
	if dateAdded == "" {
		dateAdded = time.Now().Format("2006-01-02")
	}

	car := models.Car{
		Color:          strings.TrimSpace(req.Color),
		Make:           carMake,
		Model:          carModel,
		Year:           strings.TrimSpace(req.Year),
		Notes:          strings.TrimSpace(req.Notes),
		DateAdded:      dateAdded,
		ProjPickupDate: req.ProjPickupDate,
		UserID:         ownerID,
	}

	if err := h.db.Create(&car).Error; err != nil {
		httperr.Internal(c, "failed_to_create_car")
		return
	}

	httpresp.Created(c, "Car added", car.ID)
}

func (h *CarHandler) Update(c *gin.Context) {
	caller := currentIdentity(c)

	car, ok := h.fetchCar(c)
	if !ok {
		return
	}

	if !policy.CanTouchCar(caller, car.UserID) {
		httperr.Forbidden(c, "forbidden")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	if req.Color != nil {
		car.Color = *req.Color
	}
	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Notes != nil {
		car.Notes = *req.Notes
	}
	if req.ProjPickupDate != nil {
		car.ProjPickupDate = *req.ProjPickupDate
	}

	if err := h.db.Save(car).Error; err != nil {
		httperr.Internal(c, "failed_to_update_car")
		return
	}

	httpresp.Message(c, "Car updated")
}

func (h *CarHandler) Delete(c *gin.Context) {
	caller := currentIdentity(c)

	car, ok := h.fetchCar(c)
	if !ok {
		return
	}

	if !policy.CanTouchCar(caller, car.UserID) {
		httperr.Forbidden(c, "forbidden")
		return
	}

	if err := h.db.Delete(car).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_car")
		return
	}

	httpresp.Message(c, "Car deleted")
}

// fetchCar loads the car named by the :id param, writing the error
// response itself when there is nothing to act on.
func (h *CarHandler) fetchCar(c *gin.Context) (*models.Car, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.NotFound(c, "not_found")
		return nil, false
	}

	var car models.Car
	if err := h.db.First(&car, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found")
			return nil, false
		}
		httperr.Internal(c, "internal_error")
		return nil, false
	}

	return &car, true
}
