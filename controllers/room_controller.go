package controllers

import (
	"log"
	"net/http"
	"strings"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		log.Printf("GetRooms error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchRooms", err.Error())
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.RoomSvc.GetRoomTypes()
	if err != nil {
		log.Printf("GetRoomTypes error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchRoomTypes", err.Error())
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("CreateRoom bind error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.RoomSvc.Create(&room); err != nil {
		// Duplicate room_number hits the unique index.
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			utils.JSONError(c, http.StatusConflict, "error.duplicateRoom",
				"room number '"+room.RoomNumber+"' already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.RoomSvc.Update(id, updates); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room updated"})
}

type roomStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload roomStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	room, err := ctrl.RoomSvc.UpdateStatus(id, payload.Status)
	if err != nil {
		log.Printf("UpdateRoomStatus error for room %d -> %s: %v", id, payload.Status, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}
