package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Company Name", "company_name"},
		{"  Emergency Contact  ", "emergency_contact"},
		{"Vehicle Plate #", "vehicle_plate"},
		{"UPPER case", "upper_case"},
		{"déjà vu", "dj_vu"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestCreateFormFieldRequest_NameDerivedFromLabel(t *testing.T) {
	req := CreateFormFieldRequest{Label: " Emergency Contact ", Type: "TEXT"}
	req.Normalize()

	assert.Equal(t, "emergency_contact", req.Name)
	assert.Equal(t, "text", req.Type)
	assert.Equal(t, "Emergency Contact", req.Label)
}

func TestCreateFormFieldRequest_ExplicitNameIsSlugged(t *testing.T) {
	req := CreateFormFieldRequest{Name: "Custom Key", Label: "Whatever", Type: "text"}
	req.Normalize()
	assert.Equal(t, "custom_key", req.Name)
}

func TestCreateFormFieldRequest_ToModelActiveByDefault(t *testing.T) {
	req := CreateFormFieldRequest{Label: "Host", Type: "select"}
	req.Normalize()

	m := req.ToModel()
	assert.True(t, m.IsActive)
	assert.Equal(t, "host", m.Name)
}
