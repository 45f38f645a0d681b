package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func TestNightAuditPostsRoomRentForStayover(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewNightAuditService(gdb)

	today := time.Date(2026, 3, 12, 9, 30, 0, 0, time.Local)
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT \\* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id", "check_in_date"}).
			AddRow(7, models.BookingStatusCheckedIn, 2, 3, checkIn))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `folio_charges`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status", "rate"}).
			AddRow(3, "101", models.RoomStatusOccupied, "1500.00"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `folio_charges`").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	summary, err := svc.Run(today)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Scanned)
	assert.Equal(t, 1, summary.Posted)
	assert.Equal(t, 0, summary.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second run for the same date must not double-post.
func TestNightAuditSkipsAlreadyChargedBooking(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewNightAuditService(gdb)

	today := time.Date(2026, 3, 12, 23, 50, 0, 0, time.Local)
	checkIn := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT \\* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id", "check_in_date"}).
			AddRow(7, models.BookingStatusCheckedIn, 2, 3, checkIn))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `folio_charges`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	summary, err := svc.Run(today)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Scanned)
	assert.Equal(t, 0, summary.Posted)
	assert.Equal(t, 1, summary.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNightAuditNoStayovers(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewNightAuditService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "guest_id", "room_id", "check_in_date"}))

	summary, err := svc.Run(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Scanned)
	assert.Equal(t, 0, summary.Posted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
