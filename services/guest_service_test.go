package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateRequiresMobile(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewGuestService(gdb)

	_, err := svc.FindOrCreate(gdb, GuestInput{FullName: "Asha Verma"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestFindOrCreateReturnsExistingGuest(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewGuestService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "mobile", "email", "nationality", "current_address", "id_type", "id_number"}).
			AddRow(2, "Asha Verma", "9876543210", "asha@example.com", "Indian", "Bengaluru", "aadhaar", "1234-5678-9012"))

	guest, err := svc.FindOrCreate(gdb, GuestInput{FullName: "Asha Verma", Mobile: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, uint(2), guest.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A later visit fills in identity fields that were blank but never blanks
// out what is already there.
func TestFindOrCreateFillsBlankIdentityFields(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewGuestService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "mobile", "email", "nationality", "current_address", "id_type", "id_number"}).
			AddRow(2, "Asha Verma", "9876543210", "", "", "", "", ""))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `guests`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	guest, err := svc.FindOrCreate(gdb, GuestInput{
		FullName: "Asha Verma",
		Mobile:   "9876543210",
		Email:    "asha@example.com",
		IDType:   "aadhaar",
		IDNumber: "1234-5678-9012",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(2), guest.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateCreatesNewGuest(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewGuestService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `guests`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	guest, err := svc.FindOrCreate(gdb, GuestInput{FullName: "Ravi Kumar", Mobile: "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", guest.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
