package controllers

import (
	"log"
	"net/http"
	"strings"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.GuestSvc.GetAll()
	if err != nil {
		log.Printf("GetGuests error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchGuests", err.Error())
		return
	}
	c.JSON(http.StatusOK, guests)
}

func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	guest, err := ctrl.GuestSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var payload services.GuestInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	guest, err := ctrl.GuestSvc.FindOrCreate(ctrl.GuestSvc.DB, payload)
	if err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			utils.JSONError(c, http.StatusConflict, "error.duplicateMobile",
				"a guest with this mobile already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, guest)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload services.GuestInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	guest, err := ctrl.GuestSvc.Update(id, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// GetGuestHistory exports the guest's full stay history: bookings with
// their folios and archived documents, newest first.
func (ctrl *GuestController) GetGuestHistory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	history, err := ctrl.GuestSvc.History(id)
	if err != nil {
		log.Printf("GetGuestHistory error for guest %d: %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
