package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
)

func TestKioskCheckInRequest_MissingFields_Empty(t *testing.T) {
	var req KioskCheckInRequest
	req.Normalize()

	missing := req.MissingFields()
	assert.Equal(t, []string{
		"first_name", "phone", "purpose", "host_id",
		"visitor_type", "photo_data", "signature_data", "plate",
	}, missing)
}

func TestKioskCheckInRequest_MissingFields_Partial(t *testing.T) {
	req := KioskCheckInRequest{
		FirstName:   "Siti",
		Phone:       "0812345678",
		Purpose:     "Meeting",
		HostID:      uuid.New(),
		VisitorType: "guest",
		Plate:       "b 1234 cd",
	}
	req.Normalize()

	assert.Equal(t, []string{"photo_data", "signature_data"}, req.MissingFields())
}

func TestKioskCheckInRequest_MissingFields_Complete(t *testing.T) {
	req := KioskCheckInRequest{
		FirstName:     "Siti",
		Phone:         "0812345678",
		Purpose:       "Meeting",
		HostID:        uuid.New(),
		VisitorType:   "guest",
		PhotoData:     "data:image/png;base64,AAAA",
		SignatureData: "data:image/png;base64,BBBB",
		Plate:         "B 1234 CD",
	}
	req.Normalize()

	assert.Empty(t, req.MissingFields())
}

func TestKioskCheckInRequest_Normalize(t *testing.T) {
	req := KioskCheckInRequest{
		FirstName:   "  Siti ",
		Email:       " Siti@Example.COM ",
		VisitorType: " Guest ",
		Plate:       " b 1234 cd ",
	}
	req.Normalize()

	assert.Equal(t, "Siti", req.FirstName)
	assert.Equal(t, "siti@example.com", req.Email)
	assert.Equal(t, "guest", req.VisitorType)
	assert.Equal(t, "B 1234 CD", req.Plate)
}

func TestCheckInRequest_ToModel_Defaults(t *testing.T) {
	hostID := uuid.New()
	req := CheckInRequest{
		FirstName: "Budi",
		HostID:    hostID,
	}
	req.Normalize()

	m := req.ToModel()
	require.NotNil(t, m.HostID)
	assert.Equal(t, hostID, *m.HostID)
	assert.Equal(t, visitorModel.TypeGuest, m.VisitorType)
}

func TestCheckInRequest_Normalize_PlateUppercased(t *testing.T) {
	req := CheckInRequest{FirstName: "Budi", HostID: uuid.New(), Plate: " d 5678 ef "}
	req.Normalize()
	assert.Equal(t, "D 5678 EF", req.Plate)
}
