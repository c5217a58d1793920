package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCreate_AssignsTokenOnce(t *testing.T) {
	v := VisitorModel{FirstName: "Budi"}

	require.NoError(t, v.BeforeCreate(nil))
	first := v.QRCode
	require.True(t, strings.HasPrefix(first, "KREP-"))

	// a second hook run must not rotate the token
	require.NoError(t, v.BeforeCreate(nil))
	assert.Equal(t, first, v.QRCode)
}

func TestBeforeCreate_Defaults(t *testing.T) {
	v := VisitorModel{FirstName: "Budi"}
	require.NoError(t, v.BeforeCreate(nil))

	assert.Equal(t, TypeGuest, v.VisitorType)
	assert.Equal(t, StatusPreRegistered, v.Status)
}

func TestBeforeCreate_KeepsExplicitValues(t *testing.T) {
	v := VisitorModel{
		FirstName:   "Budi",
		QRCode:      "KREP-DEADBEEF",
		VisitorType: TypeContractor,
		Status:      StatusCheckedIn,
	}
	require.NoError(t, v.BeforeCreate(nil))

	assert.Equal(t, "KREP-DEADBEEF", v.QRCode)
	assert.Equal(t, TypeContractor, v.VisitorType)
	assert.Equal(t, StatusCheckedIn, v.Status)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Budi Santoso", (&VisitorModel{FirstName: "Budi", LastName: "Santoso"}).FullName())
	assert.Equal(t, "Budi", (&VisitorModel{FirstName: "Budi"}).FullName())
}

func TestVisitDuration(t *testing.T) {
	in := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	out := in.Add(95 * time.Minute)

	assert.Zero(t, (&VisitorModel{}).VisitDuration())
	assert.Zero(t, (&VisitorModel{CheckInTime: &in}).VisitDuration())
	assert.Equal(t, 95*time.Minute, (&VisitorModel{CheckInTime: &in, CheckOutTime: &out}).VisitDuration())
}

func TestStatusAndTypeValidators(t *testing.T) {
	for _, s := range []string{StatusPreRegistered, StatusCheckedIn, StatusInMeeting, StatusCheckedOut, StatusBlacklisted} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("departed"))

	for _, vt := range []string{TypeGuest, TypeContractor, TypeVendor, TypeInterview, TypeDelivery, TypeWalkIn, TypePreRegistered} {
		assert.True(t, IsValidVisitorType(vt), vt)
	}
	assert.False(t, IsValidVisitorType("ghost"))
}
