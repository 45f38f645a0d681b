package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DocumentTypeInvoice = "invoice"
	DocumentTypeGRC     = "grc"
)

// ErrDocumentImmutable is returned by the model hooks when anything tries
// to update or delete an archived document.
var ErrDocumentImmutable = errors.New("archived_document_immutable")

// ArchivedDocument is the write-once snapshot produced at checkout: the
// rendered markup plus the structured totals/metadata it was rendered from.
// It is the only entity with a legal-record invariant, so mutation is
// rejected at the model level as well as by the absence of any API surface.
type ArchivedDocument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`

	DocumentType   string         `gorm:"column:document_type;size:16;index" json:"document_type"`
	DocumentNumber string         `gorm:"column:document_number;size:64;uniqueIndex" json:"document_number"`
	DocumentHTML   string         `gorm:"column:document_html;type:longtext" json:"document_html"`
	DocumentData   datatypes.JSON `gorm:"column:document_data" json:"document_data"`
}

func (ArchivedDocument) TableName() string { return "archived_documents" }

func (d *ArchivedDocument) BeforeUpdate(tx *gorm.DB) error { return ErrDocumentImmutable }

func (d *ArchivedDocument) BeforeDelete(tx *gorm.DB) error { return ErrDocumentImmutable }
