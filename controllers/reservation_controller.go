package controllers

import (
	"log"
	"net/http"
	"time"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

type createReservationPayload struct {
	Guest         services.GuestInput `json:"guest" binding:"required"`
	RoomID        uint                `json:"room_id" binding:"required"`
	ArrivalDate   string              `json:"arrival_date" binding:"required,dateonly"`
	DepartureDate string              `json:"departure_date" binding:"required,dateonly"`
	Adults        int                 `json:"adults"`
	Children      int                 `json:"children"`
	Notes         string              `json:"notes"`
}

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var payload createReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("CreateReservation bind error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	arrival, _ := time.Parse("2006-01-02", payload.ArrivalDate)
	departure, _ := time.Parse("2006-01-02", payload.DepartureDate)

	reservation, err := ctrl.ReservationSvc.Create(services.CreateReservationInput{
		Guest:         payload.Guest,
		RoomID:        payload.RoomID,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Adults:        payload.Adults,
		Children:      payload.Children,
		Notes:         payload.Notes,
	})
	if err != nil {
		log.Printf("CreateReservation error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.ReservationSvc.GetAll()
	if err != nil {
		log.Printf("GetReservations error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchReservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	reservation, err := ctrl.ReservationSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.ReservationSvc.Cancel(id); err != nil {
		log.Printf("CancelReservation error for %d: %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "reservation cancelled"})
}
