// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"guesthouse-backend/models"
	"guesthouse-backend/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	CheckIn        string         `json:"check_in" binding:"required"`
	CheckOut       string         `json:"check_out" binding:"required"`
	RoomCategoryID uint           `json:"room_category_id" binding:"required"`
	GuestName      string         `json:"guest_name" binding:"required"`
	GuestPhone     string         `json:"guest_phone"`
	GuestEmail     string         `json:"guest_email" binding:"required,email"`
	Adults         int            `json:"adults"`
	Children       int            `json:"children"`
	PaymentMethod  string         `json:"payment_method" binding:"required"`
	Deposit        bool           `json:"deposit"`
	AddOns         []models.AddOn `json:"add_ons"`
}

type ManualBookingRequest struct {
	CreateBookingRequest
	Status        string `json:"status" binding:"required"`
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type EditBookingRequest struct {
	CheckIn        *string        `json:"check_in"`
	CheckOut       *string        `json:"check_out"`
	RoomCategoryID *uint          `json:"room_category_id"`
	GuestName      *string        `json:"guest_name"`
	GuestPhone     *string        `json:"guest_phone"`
	GuestEmail     *string        `json:"guest_email"`
	Adults         *int           `json:"adults"`
	Children       *int           `json:"children"`
	TotalAmount    *float64       `json:"total_amount"`
	DueAmount      *float64       `json:"due_amount"`
	Status         *string        `json:"status"`
	PaymentStatus  *string        `json:"payment_status"`
	AddOns         []models.AddOn `json:"add_ons"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// respondServiceError map sentinel error ของ service เป็น HTTP code
// แยก "ห้องไม่ว่าง" ออกจาก "ระบบพัง" ให้ฝั่ง caller ตัดสินใจ retry ได้
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDates),
		errors.Is(err, services.ErrMissingContact),
		errors.Is(err, services.ErrInvalidMethod),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidOccupancy),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrCategoryInactive),
		errors.Is(err, services.ErrMalformedCallback):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error." + err.Error(), "message": err.Error()}})

	case errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrBookingAlreadyCancelled),
		errors.Is(err, services.ErrBookingNotCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error." + err.Error(), "message": err.Error()}})

	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})

	case errors.Is(err, services.ErrInvalidSignature):
		c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"code": "error.invalidSignature", "message": "signature verification failed"}})

	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "internal error"}})
	}
}

func (ctrl *BookingController) toInput(req CreateBookingRequest) services.CreateBookingInput {
	return services.CreateBookingInput{
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		RoomCategoryID: req.RoomCategoryID,
		GuestName:      req.GuestName,
		GuestPhone:     req.GuestPhone,
		GuestEmail:     req.GuestEmail,
		Adults:         req.Adults,
		Children:       req.Children,
		PaymentMethod:  models.PaymentMethod(req.PaymentMethod),
		Deposit:        req.Deposit,
		AddOns:         req.AddOns,
	}
}

// CreateBooking - จองออนไลน์ (public)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}

	booking, err := ctrl.BookingSvc.Create(ctrl.toInput(req), nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": booking})
}

// CreateManualBooking - operator สร้างเอง กำหนดสถานะตรงๆ (ไม่ส่งอีเมลแจ้งเตือน)
func (ctrl *BookingController) CreateManualBooking(c *gin.Context) {
	var req ManualBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}

	manual := &services.ManualState{
		Status:        models.BookingStatus(req.Status),
		PaymentStatus: models.PaymentStatus(req.PaymentStatus),
	}
	booking, err := ctrl.BookingSvc.Create(ctrl.toInput(req.CreateBookingRequest), manual)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	booking, err := ctrl.BookingSvc.GetByReference(c.Param("ref"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": booking})
}

func (ctrl *BookingController) EditBooking(c *gin.Context) {
	var req EditBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}

	input := services.EditBookingInput{
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		RoomCategoryID: req.RoomCategoryID,
		GuestName:      req.GuestName,
		GuestPhone:     req.GuestPhone,
		GuestEmail:     req.GuestEmail,
		Adults:         req.Adults,
		Children:       req.Children,
		TotalAmount:    req.TotalAmount,
		DueAmount:      req.DueAmount,
		AddOns:         req.AddOns,
	}
	if req.Status != nil {
		st := models.BookingStatus(*req.Status)
		input.Status = &st
	}
	if req.PaymentStatus != nil {
		ps := models.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &ps
	}

	booking, err := ctrl.BookingSvc.Edit(c.Param("ref"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	booking, err := ctrl.BookingSvc.Cancel(c.Param("ref"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) ConfirmPayment(c *gin.Context) {
	booking, err := ctrl.BookingSvc.ConfirmPayment(c.Param("ref"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	if err := ctrl.BookingSvc.Delete(c.Param("ref")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
