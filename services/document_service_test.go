package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func invoiceFixture(t *testing.T) (*models.Booking, *models.Guest, *models.Room, []models.FolioCharge, []models.Payment, FolioTotals) {
	t.Helper()

	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	booking := &models.Booking{
		ID:            4,
		ReferenceCode: "BK-1A2B3C4D",
		Status:        models.BookingStatusCheckedIn,
		GuestID:       2,
		RoomID:        3,
		CheckInDate:   checkIn,
		Adults:        2,
		Children:      1,
	}
	guest := &models.Guest{
		ID:       2,
		FullName: "Asha Verma",
		Mobile:   "9876543210",
		IDType:   "aadhaar",
		IDNumber: "1234-5678-9012",
	}
	room := &models.Room{RoomNumber: "101", Rate: dec(t, "1500")}

	charges := []models.FolioCharge{
		{ChargeDate: checkIn, ChargeType: models.ChargeTypeRoomRent, Description: "Room rent", Amount: dec(t, "1500")},
		{ChargeDate: checkIn.AddDate(0, 0, 1), ChargeType: models.ChargeTypeRoomRent, Description: "Room rent", Amount: dec(t, "1500")},
	}
	payments := []models.Payment{
		{Amount: dec(t, "1000"), Mode: models.PaymentModeCash, ReceivedAt: checkIn},
	}
	totals := ComputeTotals(charges, payments, dec(t, "6"), dec(t, "6"))
	return booking, guest, room, charges, payments, totals
}

// The payload must carry enough exact data to re-derive its own totals.
func TestInvoicePayloadRoundTrip(t *testing.T) {
	booking, guest, room, charges, payments, totals := invoiceFixture(t)

	hotel := HotelInfo{Name: "Sunrise Residency", GSTIN: "29ABCDE1234F1Z5"}
	payload := BuildInvoicePayload(booking, guest, room, hotel, charges, payments, totals, time.Now())

	recomputed, err := RecomputeInvoiceTotals(payload)
	require.NoError(t, err)

	assert.True(t, recomputed.Subtotal.Equal(totals.Subtotal))
	assert.True(t, recomputed.CGST.Equal(totals.CGST))
	assert.True(t, recomputed.SGST.Equal(totals.SGST))
	assert.True(t, recomputed.GrandTotal.Equal(totals.GrandTotal))
	assert.True(t, recomputed.TotalPaid.Equal(totals.TotalPaid))
	assert.True(t, recomputed.Balance.Equal(totals.Balance))
}

// The stored JSON must survive marshalling without losing exactness.
func TestInvoicePayloadSurvivesJSON(t *testing.T) {
	booking, guest, room, charges, payments, totals := invoiceFixture(t)

	payload := BuildInvoicePayload(booking, guest, room, HotelInfo{Name: "Sunrise Residency"}, charges, payments, totals, time.Now())

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var restored InvoicePayload
	require.NoError(t, json.Unmarshal(data, &restored))

	recomputed, err := RecomputeInvoiceTotals(restored)
	require.NoError(t, err)
	assert.True(t, recomputed.GrandTotal.Equal(totals.GrandTotal))
	assert.True(t, recomputed.Balance.Equal(totals.Balance))
}

func TestRenderInvoiceHTML(t *testing.T) {
	booking, guest, room, charges, payments, totals := invoiceFixture(t)

	payload := BuildInvoicePayload(booking, guest, room, HotelInfo{Name: "Sunrise Residency", GSTIN: "29ABCDE1234F1Z5"}, charges, payments, totals, time.Now())
	payload.DocumentNumber = "INV-20260312-AAAAAA"

	html, err := RenderInvoiceHTML(payload)
	require.NoError(t, err)

	assert.Contains(t, html, "INV-20260312-AAAAAA")
	assert.Contains(t, html, "Sunrise Residency")
	assert.Contains(t, html, "Asha Verma")
	assert.Contains(t, html, "GSTIN: 29ABCDE1234F1Z5")
	// Display values are rounded to two places.
	assert.Contains(t, html, "3360.00")
	assert.Contains(t, html, "2360.00")
}

func TestRenderGRCHTML(t *testing.T) {
	booking, guest, room, _, _, _ := invoiceFixture(t)
	booking.ExpectedCheckout = booking.CheckInDate.AddDate(0, 0, 2)

	payload := BuildGRCPayload(booking, guest, room, HotelInfo{Name: "Sunrise Residency"}, time.Now())
	payload.DocumentNumber = "GRC-20260312-BBBBBB"

	html, err := RenderGRCHTML(payload)
	require.NoError(t, err)

	assert.Contains(t, html, "GRC-20260312-BBBBBB")
	assert.Contains(t, html, "9876543210")
	assert.Contains(t, html, "aadhaar 1234-5678-9012")
	assert.Contains(t, html, "2 adult(s), 1 child(ren)")
}

// A retried checkout must reuse the already archived document instead of
// writing a second one.
func TestArchiveInvoiceReusesExisting(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewDocumentService(gdb)

	booking, guest, room, charges, payments, totals := invoiceFixture(t)

	mock.ExpectQuery("SELECT \\* FROM `archived_documents`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "document_type", "document_number"}).
			AddRow(9, booking.ID, models.DocumentTypeInvoice, "INV-20260312-AAAAAA"))

	doc, err := svc.ArchiveInvoice(booking, guest, room, charges, payments, totals)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260312-AAAAAA", doc.DocumentNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByNumberNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewDocumentService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `archived_documents`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetByNumber("INV-20260312-ZZZZZZ")
	require.Error(t, err)
	assert.EqualError(t, err, "document_not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
