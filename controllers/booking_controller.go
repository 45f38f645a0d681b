package controllers

import (
	"log"
	"net/http"
	"time"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BookingController struct {
	BookingSvc  *services.BookingService
	CheckoutSvc *services.CheckoutService
}

func NewBookingController(bookingSvc *services.BookingService, checkoutSvc *services.CheckoutService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, CheckoutSvc: checkoutSvc}
}

// ---------------------------
// Payloads
// ---------------------------

type checkInPayload struct {
	Guest            services.GuestInput `json:"guest" binding:"required"`
	RoomID           uint                `json:"room_id" binding:"required"`
	ExpectedCheckout string              `json:"expected_checkout" binding:"required,dateonly"`
	Adults           int                 `json:"adults"`
	Children         int                 `json:"children"`
	Advance          string              `json:"advance,omitempty"`
	AdvanceMode      string              `json:"advance_mode,omitempty" binding:"omitempty,oneof=cash card upi bank_transfer"`
}

type reservationCheckInPayload struct {
	ReservationID uint                `json:"reservation_id" binding:"required"`
	Guest         services.GuestInput `json:"guest" binding:"required"`
	Advance       string              `json:"advance,omitempty"`
	AdvanceMode   string              `json:"advance_mode,omitempty" binding:"omitempty,oneof=cash card upi bank_transfer"`
}

type extendStayPayload struct {
	ExpectedCheckout string `json:"expected_checkout" binding:"required,dateonly"`
}

type checkoutPayload struct {
	Amount     string `json:"amount,omitempty"`
	Mode       string `json:"mode,omitempty" binding:"omitempty,oneof=cash card upi bank_transfer"`
	OperatorID uint   `json:"operator_id" binding:"required"`
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// ---------------------------
// Check-in
// ---------------------------

func (ctrl *BookingController) CheckIn(c *gin.Context) {
	var payload checkInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("CheckIn bind error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	advance, err := parseAmount(payload.Advance)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidAmount", "advance is not a valid amount")
		return
	}
	expected, _ := time.Parse("2006-01-02", payload.ExpectedCheckout)

	booking, err := ctrl.BookingSvc.CheckIn(services.CheckInInput{
		Guest:            payload.Guest,
		RoomID:           payload.RoomID,
		ExpectedCheckout: expected,
		Adults:           payload.Adults,
		Children:         payload.Children,
		Advance:          advance,
		AdvanceMode:      payload.AdvanceMode,
	})
	if err != nil {
		log.Printf("CheckIn error for room %d: %v", payload.RoomID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (ctrl *BookingController) CheckInReservation(c *gin.Context) {
	var payload reservationCheckInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	advance, err := parseAmount(payload.Advance)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidAmount", "advance is not a valid amount")
		return
	}

	booking, err := ctrl.BookingSvc.CheckInReservation(payload.ReservationID, payload.Guest, advance, payload.AdvanceMode)
	if err != nil {
		log.Printf("CheckInReservation error for reservation %d: %v", payload.ReservationID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ---------------------------
// Stay management
// ---------------------------

func (ctrl *BookingController) ExtendStay(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload extendStayPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	newCheckout, _ := time.Parse("2006-01-02", payload.ExpectedCheckout)

	booking, err := ctrl.BookingSvc.ExtendStay(id, newCheckout)
	if err != nil {
		log.Printf("ExtendStay error for booking %d: %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchBookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetDetails(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// Checkout
// ---------------------------

func (ctrl *BookingController) Checkout(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload checkoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	amount, err := parseAmount(payload.Amount)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidAmount", "amount is not a valid amount")
		return
	}

	result, err := ctrl.CheckoutSvc.Checkout(id, amount, payload.Mode, payload.OperatorID)
	if err != nil {
		log.Printf("Checkout error for booking %d: %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
