package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func TestCanTransitionRoomStatus(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.RoomStatusVacantDirty, models.RoomStatusVacantClean, true},
		{models.RoomStatusVacantClean, models.RoomStatusVacantDirty, true},
		{models.RoomStatusVacantClean, models.RoomStatusOutOfOrder, true},
		{models.RoomStatusVacantDirty, models.RoomStatusOutOfOrder, true},
		{models.RoomStatusOutOfOrder, models.RoomStatusVacantClean, true},
		{models.RoomStatusOutOfOrder, models.RoomStatusVacantDirty, true},
		{models.RoomStatusVacantClean, models.RoomStatusVacantClean, true},

		// occupied is owned by check-in/checkout
		{models.RoomStatusOccupied, models.RoomStatusVacantClean, false},
		{models.RoomStatusOccupied, models.RoomStatusVacantDirty, false},
		{models.RoomStatusOccupied, models.RoomStatusOutOfOrder, false},
		{models.RoomStatusVacantClean, models.RoomStatusOccupied, false},
		{models.RoomStatusVacantDirty, models.RoomStatusOccupied, false},
		{models.RoomStatusOutOfOrder, models.RoomStatusOccupied, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransitionRoomStatus(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateStatusRejectsOccupiedRoom(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRoomService(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(3, "101", models.RoomStatusOccupied))
	mock.ExpectRollback()

	_, err := svc.UpdateStatus(3, models.RoomStatusVacantClean)
	require.Error(t, err)
	assert.EqualError(t, err, "invalid_status_transition")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusAppliesTransition(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRoomService(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(3, "101", models.RoomStatusVacantDirty))
	mock.ExpectExec("UPDATE `rooms`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	room, err := svc.UpdateStatus(3, models.RoomStatusVacantClean)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusVacantClean, room.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomBlockedByActiveBooking(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRoomService(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	err := svc.Delete(3)
	require.Error(t, err)
	assert.EqualError(t, err, "room_occupied")
	assert.NoError(t, mock.ExpectationsWereMet())
}
