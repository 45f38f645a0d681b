package controllers

import (
	"net/http"

	"frontdesk-backend/services"

	"github.com/gin-gonic/gin"
)

// DocumentController serves archived documents. Read-only: there is no
// update or delete route, matching the write-once model.
type DocumentController struct {
	DocumentSvc *services.DocumentService
}

func NewDocumentController(svc *services.DocumentService) *DocumentController {
	return &DocumentController{DocumentSvc: svc}
}

func (ctrl *DocumentController) ListByBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	docs, err := ctrl.DocumentSvc.ListByBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (ctrl *DocumentController) GetByNumber(c *gin.Context) {
	doc, err := ctrl.DocumentSvc.GetByNumber(c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetHTMLByNumber returns the rendered markup directly for printing.
func (ctrl *DocumentController) GetHTMLByNumber(c *gin.Context) {
	doc, err := ctrl.DocumentSvc.GetByNumber(c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc.DocumentHTML))
}
