package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSection_KnownVariants(t *testing.T) {
	doc, err := DecodeSection(SectionBooking, []byte(`{"method":"phone","phone":"+27 81","email":"a@b.co","whatsappNumber":"2781"}`))
	require.NoError(t, err)

	booking, ok := doc.(BookingContent)
	require.True(t, ok)
	assert.Equal(t, BookingPhone, booking.Method)
	assert.NoError(t, ValidateSection(booking))
}

func TestDecodeSection_UnknownSectionIsOpaque(t *testing.T) {
	doc, err := DecodeSection("footer", []byte(`{"tagline":"Glam","links":["a","b"]}`))
	require.NoError(t, err)

	opaque, ok := doc.(OpaqueContent)
	require.True(t, ok)
	assert.Equal(t, "footer", opaque.SectionName())
	assert.NoError(t, ValidateSection(opaque))

	raw, err := json.Marshal(opaque)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tagline":"Glam","links":["a","b"]}`, string(raw))
}

func TestDecodeSection_RejectsNonObjects(t *testing.T) {
	_, err := DecodeSection("footer", []byte(`null`))
	assert.Error(t, err)

	_, err = DecodeSection(SectionHero, []byte(`[1,2]`))
	assert.Error(t, err)
}

func TestValidateSection_FieldMessages(t *testing.T) {
	err := ValidateSection(BookingContent{Method: "fax", Phone: "1", Email: "not-an-email", WhatsAppNumber: "1"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Contains(t, fields, "method")
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.NotContains(t, fields, "phone")
}

func TestValidateSection_OpaqueRejectsNestedObjects(t *testing.T) {
	err := ValidateSection(OpaqueContent{Name: "x", Fields: map[string]any{"nested": map[string]any{"a": 1}}})
	assert.Error(t, err)
	assert.Nil(t, FieldErrors(err))
}

func TestDefaults_AreValid(t *testing.T) {
	for _, name := range []string{SectionHero, SectionAbout, SectionBooking} {
		assert.NoError(t, ValidateSection(DefaultSection(name)), name)
	}
	assert.Equal(t, "contact", DefaultSection("contact").SectionName())
}

func TestDecodePayload_MissingFieldsAreZero(t *testing.T) {
	p := DecodePayload(EventWhatsAppClick, []byte(`{"action":"booking_attempt"}`))
	click, ok := p.(WhatsAppClickData)
	require.True(t, ok)
	assert.Empty(t, click.Service)

	p = DecodePayload(EventPageView, nil)
	_, ok = p.(PageViewData)
	assert.True(t, ok)

	p = DecodePayload("scroll_depth", []byte(`{"depth":80}`))
	assert.Equal(t, "scroll_depth", p.EventType())
}
