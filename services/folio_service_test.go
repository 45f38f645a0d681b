package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestComputeTotalsTwoNightStay(t *testing.T) {
	charges := []models.FolioCharge{
		{ChargeType: models.ChargeTypeRoomRent, Amount: dec(t, "1500")},
		{ChargeType: models.ChargeTypeRoomRent, Amount: dec(t, "1500")},
	}
	payments := []models.Payment{
		{Amount: dec(t, "1000"), Mode: models.PaymentModeCash},
	}

	totals := ComputeTotals(charges, payments, dec(t, "6"), dec(t, "6"))

	assert.True(t, totals.Subtotal.Equal(dec(t, "3000")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.CGST.Equal(dec(t, "180")), "cgst %s", totals.CGST)
	assert.True(t, totals.SGST.Equal(dec(t, "180")), "sgst %s", totals.SGST)
	assert.True(t, totals.GrandTotal.Equal(dec(t, "3360")), "grand %s", totals.GrandTotal)
	assert.True(t, totals.TotalPaid.Equal(dec(t, "1000")), "paid %s", totals.TotalPaid)
	assert.True(t, totals.Balance.Equal(dec(t, "2360")), "balance %s", totals.Balance)
}

// Fractional rates must come through exactly; rounding is a rendering
// concern, not an arithmetic one.
func TestComputeTotalsNoIntermediateRounding(t *testing.T) {
	charges := []models.FolioCharge{
		{Amount: dec(t, "100.55")},
	}

	totals := ComputeTotals(charges, nil, dec(t, "2.5"), dec(t, "2.5"))

	assert.True(t, totals.CGST.Equal(dec(t, "2.51375")), "cgst %s", totals.CGST)
	assert.True(t, totals.GrandTotal.Equal(dec(t, "105.5775")), "grand %s", totals.GrandTotal)
	assert.Equal(t, "105.58", totals.GrandTotal.StringFixed(2))
}

func TestComputeTotalsEmptyFolio(t *testing.T) {
	totals := ComputeTotals(nil, nil, dec(t, "6"), dec(t, "6"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.Balance.IsZero())
}

func TestComputeTotalsOverpaymentNegativeBalance(t *testing.T) {
	charges := []models.FolioCharge{{Amount: dec(t, "1000")}}
	payments := []models.Payment{{Amount: dec(t, "2000")}}

	totals := ComputeTotals(charges, payments, dec(t, "6"), dec(t, "6"))

	assert.True(t, totals.Balance.Equal(dec(t, "-880")), "balance %s", totals.Balance)
}

func TestAddChargeRejectsUnknownType(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewFolioService(gdb)

	_, err := svc.AddCharge(1, time.Now(), "minibar", "snacks", dec(t, "50"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestAddChargeDuplicateRoomRent(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewFolioService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id"}).
			AddRow(4, models.BookingStatusCheckedIn, 1, 2))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `folio_charges`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := svc.AddCharge(4, time.Now(), models.ChargeTypeRoomRent, "Room rent", dec(t, "1500"))
	require.Error(t, err)
	assert.EqualError(t, err, "duplicate_charge")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddChargeClosedBooking(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewFolioService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(4, models.BookingStatusCheckedOut))

	_, err := svc.AddCharge(4, time.Now(), models.ChargeTypeMiscellaneous, "Laundry", dec(t, "200"))
	require.Error(t, err)
	assert.EqualError(t, err, "booking_not_open")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewFolioService(gdb)

	_, err := svc.AddPayment(4, decimal.Zero, models.PaymentModeCash, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestAddPaymentInsertsRow(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewFolioService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(4, models.BookingStatusCheckedIn))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	payment, err := svc.AddPayment(4, dec(t, "1000"), models.PaymentModeUPI, "advance")
	require.NoError(t, err)
	assert.Equal(t, uint(4), payment.BookingID)
	assert.Equal(t, models.PaymentModeUPI, payment.Mode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
