package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func TestCreateReservationRejectsInvertedDates(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewReservationService(gdb, NewGuestService(gdb))

	arrival := time.Now().AddDate(0, 0, 5)
	_, err := svc.Create(CreateReservationInput{
		Guest:         GuestInput{FullName: "Asha Verma", Mobile: "9876543210"},
		RoomID:        3,
		ArrivalDate:   arrival,
		DepartureDate: arrival.AddDate(0, 0, -1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestCreateReservationUnknownRoom(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewReservationService(gdb, NewGuestService(gdb))

	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	arrival := time.Now().AddDate(0, 0, 5)
	_, err := svc.Create(CreateReservationInput{
		Guest:         GuestInput{FullName: "Asha Verma", Mobile: "9876543210"},
		RoomID:        99,
		ArrivalDate:   arrival,
		DepartureDate: arrival.AddDate(0, 0, 2),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "room_not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReservationOnlyWhenConfirmed(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewReservationService(gdb, NewGuestService(gdb))

	mock.ExpectQuery("SELECT \\* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(5, models.ReservationStatusCheckedIn))

	err := svc.Cancel(5)
	require.Error(t, err)
	assert.EqualError(t, err, "reservation_not_confirmed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReservation(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewReservationService(gdb, NewGuestService(gdb))

	mock.ExpectQuery("SELECT \\* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(5, models.ReservationStatusConfirmed))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `reservations`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Cancel(5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
