package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentArchiver is the slice of DocumentService the checkout workflow
// depends on.
type DocumentArchiver interface {
	ArchiveInvoice(booking *models.Booking, guest *models.Guest, room *models.Room, charges []models.FolioCharge, payments []models.Payment, totals FolioTotals) (*models.ArchivedDocument, error)
	ArchiveGRC(booking *models.Booking, guest *models.Guest, room *models.Room) (*models.ArchivedDocument, error)
}

// HotelInfo is the property header embedded in every document payload.
type HotelInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin"`
}

type ChargeLine struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type PaymentLine struct {
	Date   string `json:"date"`
	Mode   string `json:"mode"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// InvoicePayload is the frozen structured snapshot stored alongside the
// rendered invoice. Amounts are exact decimal strings so the totals can be
// recomputed from the payload's own data and must match exactly.
type InvoicePayload struct {
	DocumentNumber string `json:"document_number"`
	BookingRef     string `json:"booking_ref"`
	GuestName      string `json:"guest_name"`
	RoomNumber     string `json:"room_number"`
	CheckInDate    string `json:"check_in_date"`
	CheckoutDate   string `json:"checkout_date"`

	Hotel HotelInfo `json:"hotel"`

	Charges  []ChargeLine  `json:"charges"`
	Payments []PaymentLine `json:"payments"`

	CGSTRate string `json:"cgst_rate"`
	SGSTRate string `json:"sgst_rate"`

	Subtotal   string `json:"subtotal"`
	CGST       string `json:"cgst"`
	SGST       string `json:"sgst"`
	GrandTotal string `json:"grand_total"`
	TotalPaid  string `json:"total_paid"`
	Balance    string `json:"balance"`

	GeneratedAt string `json:"generated_at"`
}

// GRCPayload is the frozen guest registration snapshot.
type GRCPayload struct {
	DocumentNumber string `json:"document_number"`
	BookingRef     string `json:"booking_ref"`

	Hotel HotelInfo `json:"hotel"`

	GuestName      string `json:"guest_name"`
	Mobile         string `json:"mobile"`
	Email          string `json:"email,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	CurrentAddress string `json:"current_address,omitempty"`
	IDType         string `json:"id_type"`
	IDNumber       string `json:"id_number"`

	RoomNumber   string `json:"room_number"`
	CheckInDate  string `json:"check_in_date"`
	CheckoutDate string `json:"checkout_date"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`

	GeneratedAt string `json:"generated_at"`
}

// RecomputeInvoiceTotals re-derives the totals from a payload's embedded
// charge/payment/rate data. Archived invoices must round-trip exactly.
func RecomputeInvoiceTotals(p InvoicePayload) (FolioTotals, error) {
	charges := make([]models.FolioCharge, 0, len(p.Charges))
	for _, line := range p.Charges {
		amt, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return FolioTotals{}, fmt.Errorf("invalid charge amount %q: %w", line.Amount, err)
		}
		charges = append(charges, models.FolioCharge{Amount: amt})
	}

	payments := make([]models.Payment, 0, len(p.Payments))
	for _, line := range p.Payments {
		amt, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return FolioTotals{}, fmt.Errorf("invalid payment amount %q: %w", line.Amount, err)
		}
		payments = append(payments, models.Payment{Amount: amt})
	}

	cgstRate, err := decimal.NewFromString(p.CGSTRate)
	if err != nil {
		return FolioTotals{}, fmt.Errorf("invalid cgst rate %q: %w", p.CGSTRate, err)
	}
	sgstRate, err := decimal.NewFromString(p.SGSTRate)
	if err != nil {
		return FolioTotals{}, fmt.Errorf("invalid sgst rate %q: %w", p.SGSTRate, err)
	}

	return ComputeTotals(charges, payments, cgstRate, sgstRate), nil
}

// DocumentService renders and archives checkout documents and serves
// read-only lookups. There is deliberately no update or delete method.
type DocumentService struct {
	DB *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{DB: db}
}

const dateOnly = "2006-01-02"

func (s *DocumentService) loadHotelInfo() HotelInfo {
	var profile models.HotelProfile
	if err := s.DB.First(&profile).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("warning: failed to load hotel profile: %v", err)
		}
		return HotelInfo{Name: "Hotel"}
	}
	return HotelInfo{
		Name:    profile.Name,
		Address: profile.Address,
		Phone:   profile.Phone,
		Email:   profile.Email,
		GSTIN:   profile.GSTIN,
	}
}

func (s *DocumentService) findExisting(bookingID uint, docType string) (*models.ArchivedDocument, error) {
	var doc models.ArchivedDocument
	err := s.DB.Where("booking_id = ? AND document_type = ?", bookingID, docType).First(&doc).Error
	if err == nil {
		return &doc, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to check existing document: %w", err)
}

// ArchiveInvoice persists the invoice snapshot for a booking. If one was
// already archived (a checkout retry after a failed closure step) the
// existing document is returned untouched.
func (s *DocumentService) ArchiveInvoice(booking *models.Booking, guest *models.Guest, room *models.Room, charges []models.FolioCharge, payments []models.Payment, totals FolioTotals) (*models.ArchivedDocument, error) {
	if existing, err := s.findExisting(booking.ID, models.DocumentTypeInvoice); err != nil {
		return nil, err
	} else if existing != nil {
		log.Printf("invoice already archived for booking %d (%s), reusing", booking.ID, existing.DocumentNumber)
		return existing, nil
	}

	now := time.Now()
	payload := BuildInvoicePayload(booking, guest, room, s.loadHotelInfo(), charges, payments, totals, now)
	return s.create(booking.ID, models.DocumentTypeInvoice, "INV", now, func(number string) (string, []byte, error) {
		payload.DocumentNumber = number
		html, err := RenderInvoiceHTML(payload)
		if err != nil {
			return "", nil, err
		}
		data, err := json.Marshal(payload)
		return html, data, err
	})
}

// ArchiveGRC persists the guest registration snapshot for a booking.
func (s *DocumentService) ArchiveGRC(booking *models.Booking, guest *models.Guest, room *models.Room) (*models.ArchivedDocument, error) {
	if existing, err := s.findExisting(booking.ID, models.DocumentTypeGRC); err != nil {
		return nil, err
	} else if existing != nil {
		log.Printf("grc already archived for booking %d (%s), reusing", booking.ID, existing.DocumentNumber)
		return existing, nil
	}

	now := time.Now()
	payload := BuildGRCPayload(booking, guest, room, s.loadHotelInfo(), now)
	return s.create(booking.ID, models.DocumentTypeGRC, "GRC", now, func(number string) (string, []byte, error) {
		payload.DocumentNumber = number
		html, err := RenderGRCHTML(payload)
		if err != nil {
			return "", nil, err
		}
		data, err := json.Marshal(payload)
		return html, data, err
	})
}

// create inserts the document, retrying the random document number on a
// unique-index collision.
func (s *DocumentService) create(bookingID uint, docType, prefix string, at time.Time, build func(number string) (string, []byte, error)) (*models.ArchivedDocument, error) {
	const maxRetries = 5
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		number, err := utils.GenerateDocumentNumber(prefix, at)
		if err != nil {
			return nil, fmt.Errorf("failed to generate document number: %w", err)
		}
		html, data, err := build(number)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", docType, err)
		}

		doc := models.ArchivedDocument{
			BookingID:      bookingID,
			DocumentType:   docType,
			DocumentNumber: number,
			DocumentHTML:   html,
			DocumentData:   datatypes.JSON(data),
		}
		if err := s.DB.Create(&doc).Error; err != nil {
			lastErr = err
			lc := strings.ToLower(err.Error())
			if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
				log.Printf("document number collision (attempt %d), retrying", attempt+1)
				continue
			}
			return nil, fmt.Errorf("failed to archive %s: %w", docType, err)
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("failed to archive %s after retries: %w", docType, lastErr)
}

func (s *DocumentService) GetByNumber(number string) (*models.ArchivedDocument, error) {
	var doc models.ArchivedDocument
	if err := s.DB.Where("document_number = ?", number).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("document_not_found")
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) ListByBooking(bookingID uint) ([]models.ArchivedDocument, error) {
	var docs []models.ArchivedDocument
	if err := s.DB.Where("booking_id = ?", bookingID).Order("created_at").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// BuildInvoicePayload freezes the full charge/payment sets, the rates, and
// the computed totals into the snapshot stored with the invoice. Amounts are
// exact strings; display rounding happens only in the template.
func BuildInvoicePayload(booking *models.Booking, guest *models.Guest, room *models.Room, hotel HotelInfo, charges []models.FolioCharge, payments []models.Payment, totals FolioTotals, at time.Time) InvoicePayload {
	chargeLines := make([]ChargeLine, 0, len(charges))
	for _, ch := range charges {
		chargeLines = append(chargeLines, ChargeLine{
			Date:        ch.ChargeDate.Format(dateOnly),
			Type:        ch.ChargeType,
			Description: ch.Description,
			Amount:      ch.Amount.String(),
		})
	}
	paymentLines := make([]PaymentLine, 0, len(payments))
	for _, p := range payments {
		paymentLines = append(paymentLines, PaymentLine{
			Date:   p.ReceivedAt.Format(dateOnly),
			Mode:   p.Mode,
			Amount: p.Amount.String(),
			Note:   p.Note,
		})
	}

	checkout := at.Format(dateOnly)
	if booking.ActualCheckout != nil {
		checkout = booking.ActualCheckout.Format(dateOnly)
	}

	return InvoicePayload{
		BookingRef:   booking.ReferenceCode,
		GuestName:    guest.FullName,
		RoomNumber:   room.RoomNumber,
		CheckInDate:  booking.CheckInDate.Format(dateOnly),
		CheckoutDate: checkout,
		Hotel:        hotel,
		Charges:      chargeLines,
		Payments:     paymentLines,
		CGSTRate:     totals.CGSTRate.String(),
		SGSTRate:     totals.SGSTRate.String(),
		Subtotal:     totals.Subtotal.String(),
		CGST:         totals.CGST.String(),
		SGST:         totals.SGST.String(),
		GrandTotal:   totals.GrandTotal.String(),
		TotalPaid:    totals.TotalPaid.String(),
		Balance:      totals.Balance.String(),
		GeneratedAt:  at.Format(time.RFC3339),
	}
}

func BuildGRCPayload(booking *models.Booking, guest *models.Guest, room *models.Room, hotel HotelInfo, at time.Time) GRCPayload {
	return GRCPayload{
		BookingRef:     booking.ReferenceCode,
		Hotel:          hotel,
		GuestName:      guest.FullName,
		Mobile:         guest.Mobile,
		Email:          guest.Email,
		Nationality:    guest.Nationality,
		CurrentAddress: guest.CurrentAddress,
		IDType:         guest.IDType,
		IDNumber:       guest.IDNumber,
		RoomNumber:     room.RoomNumber,
		CheckInDate:    booking.CheckInDate.Format(dateOnly),
		CheckoutDate:   booking.ExpectedCheckout.Format(dateOnly),
		Adults:         booking.Adults,
		Children:       booking.Children,
		GeneratedAt:    at.Format(time.RFC3339),
	}
}

// money renders an exact decimal string at two places for display.
func money(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.StringFixed(2)
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{"money": money}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {{.DocumentNumber}}</title></head>
<body>
<h1>{{.Hotel.Name}}</h1>
<p>{{.Hotel.Address}}<br>{{.Hotel.Phone}} {{.Hotel.Email}}{{if .Hotel.GSTIN}}<br>GSTIN: {{.Hotel.GSTIN}}{{end}}</p>
<h2>Tax Invoice {{.DocumentNumber}}</h2>
<p>Booking: {{.BookingRef}}<br>Guest: {{.GuestName}}<br>Room: {{.RoomNumber}}<br>Stay: {{.CheckInDate}} to {{.CheckoutDate}}</p>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Date</th><th>Description</th><th>Amount</th></tr>
{{range .Charges}}<tr><td>{{.Date}}</td><td>{{.Description}}</td><td align="right">{{money .Amount}}</td></tr>
{{end}}</table>
<p>Subtotal: {{money .Subtotal}}<br>
CGST ({{.CGSTRate}}%): {{money .CGST}}<br>
SGST ({{.SGSTRate}}%): {{money .SGST}}<br>
<b>Grand Total: {{money .GrandTotal}}</b></p>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Date</th><th>Mode</th><th>Paid</th></tr>
{{range .Payments}}<tr><td>{{.Date}}</td><td>{{.Mode}}</td><td align="right">{{money .Amount}}</td></tr>
{{end}}</table>
<p>Total Paid: {{money .TotalPaid}}<br><b>Balance: {{money .Balance}}</b></p>
<p><small>Generated {{.GeneratedAt}}</small></p>
</body>
</html>
`))

var grcTmpl = template.Must(template.New("grc").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Guest Registration {{.DocumentNumber}}</title></head>
<body>
<h1>{{.Hotel.Name}}</h1>
<h2>Guest Registration Card {{.DocumentNumber}}</h2>
<p>Booking: {{.BookingRef}}</p>
<table border="1" cellspacing="0" cellpadding="4">
<tr><td>Guest</td><td>{{.GuestName}}</td></tr>
<tr><td>Mobile</td><td>{{.Mobile}}</td></tr>
{{if .Email}}<tr><td>Email</td><td>{{.Email}}</td></tr>{{end}}
{{if .Nationality}}<tr><td>Nationality</td><td>{{.Nationality}}</td></tr>{{end}}
{{if .CurrentAddress}}<tr><td>Address</td><td>{{.CurrentAddress}}</td></tr>{{end}}
<tr><td>ID</td><td>{{.IDType}} {{.IDNumber}}</td></tr>
<tr><td>Room</td><td>{{.RoomNumber}}</td></tr>
<tr><td>Stay</td><td>{{.CheckInDate}} to {{.CheckoutDate}}</td></tr>
<tr><td>Guests</td><td>{{.Adults}} adult(s), {{.Children}} child(ren)</td></tr>
</table>
<p><small>Generated {{.GeneratedAt}}</small></p>
</body>
</html>
`))

func RenderInvoiceHTML(p InvoicePayload) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderGRCHTML(p GRCPayload) (string, error) {
	var buf bytes.Buffer
	if err := grcTmpl.Execute(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}
