package controllers

import (
	"errors"
	"net/http"

	"frontdesk-backend/config"
	"frontdesk-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type hotelProfilePayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin"`
}

func GetHotelProfile(c *gin.Context) {
	var profile models.HotelProfile
	if err := config.DB.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"hotel": models.HotelProfile{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": profile})
}

func UpdateHotelProfile(c *gin.Context) {
	var payload hotelProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.HotelProfile
	err := config.DB.First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.HotelProfile{
				Name:    payload.Name,
				Address: payload.Address,
				Phone:   payload.Phone,
				Email:   payload.Email,
				GSTIN:   payload.GSTIN,
			}
			if err := config.DB.Create(&profile).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"hotel": profile})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&profile).Updates(map[string]interface{}{
		"name":    payload.Name,
		"address": payload.Address,
		"phone":   payload.Phone,
		"email":   payload.Email,
		"gstin":   payload.GSTIN,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": profile})
}

type taxConfigPayload struct {
	CGSTPercent string `json:"cgst_percent" binding:"required"`
	SGSTPercent string `json:"sgst_percent" binding:"required"`
}

func GetTaxConfig(c *gin.Context) {
	var tax models.TaxConfig
	if err := config.DB.First(&tax).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"taxes": models.TaxConfig{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxes": tax})
}

// UpdateTaxConfig overwrites the active rates. Archived documents carry
// their own frozen rates, so history does not shift.
func UpdateTaxConfig(c *gin.Context) {
	var payload taxConfigPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cgst, err := decimal.NewFromString(payload.CGSTPercent)
	if err != nil || cgst.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cgst_percent must be a non-negative rate"})
		return
	}
	sgst, err := decimal.NewFromString(payload.SGSTPercent)
	if err != nil || sgst.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sgst_percent must be a non-negative rate"})
		return
	}

	var tax models.TaxConfig
	err = config.DB.First(&tax).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tax = models.TaxConfig{CGSTPercent: cgst, SGSTPercent: sgst}
			if err := config.DB.Create(&tax).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"taxes": tax})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&tax).Updates(map[string]interface{}{
		"cgst_percent": cgst,
		"sgst_percent": sgst,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tax.CGSTPercent = cgst
	tax.SGSTPercent = sgst
	c.JSON(http.StatusOK, gin.H{"taxes": tax})
}
