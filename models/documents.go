package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	SectionHero    = "hero"
	SectionAbout   = "about"
	SectionBooking = "booking"
)

// Booking methods selectable in the booking section.
const (
	BookingWhatsApp = "whatsapp"
	BookingPhone    = "phone"
	BookingEmail    = "email"
)

// SectionDocument is the decoded content of one site section. Known sections
// have their own struct; anything else is kept as an OpaqueContent map.
type SectionDocument interface {
	SectionName() string
}

type HeroContent struct {
	Title            string `json:"title" validate:"required"`
	Subtitle         string `json:"subtitle" validate:"required"`
	Description      string `json:"description" validate:"required"`
	CTAText          string `json:"ctaText" validate:"required"`
	CTASecondaryText string `json:"ctaSecondaryText" validate:"required"`
}

func (HeroContent) SectionName() string { return SectionHero }

type AboutContent struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Mission     string `json:"mission,omitempty"`
}

func (AboutContent) SectionName() string { return SectionAbout }

type BookingContent struct {
	Method         string `json:"method" validate:"required,oneof=whatsapp phone email"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	WhatsAppNumber string `json:"whatsappNumber" validate:"required"`
}

func (BookingContent) SectionName() string { return SectionBooking }

// OpaqueContent holds sections without a dedicated schema.
type OpaqueContent struct {
	Name   string
	Fields map[string]any
}

func (o OpaqueContent) SectionName() string { return o.Name }

func (o OpaqueContent) MarshalJSON() ([]byte, error) {
	if o.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o.Fields)
}

var errNotObject = errors.New("content must be a JSON object")

// DecodeSection parses raw JSON into the variant registered for section.
func DecodeSection(section string, raw []byte) (SectionDocument, error) {
	switch section {
	case SectionHero:
		var doc HeroContent
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		return doc, nil
	case SectionAbout:
		var doc AboutContent
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		return doc, nil
	case SectionBooking:
		var doc BookingContent
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		return doc, nil
	default:
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode %s: %w", section, err)
		}
		if fields == nil {
			return nil, fmt.Errorf("decode %s: %w", section, errNotObject)
		}
		return OpaqueContent{Name: section, Fields: fields}, nil
	}
}

// ValidateSection checks a decoded document against its schema. Opaque
// documents only need to be flat: scalars or lists of strings.
func ValidateSection(doc SectionDocument) error {
	opaque, ok := doc.(OpaqueContent)
	if !ok {
		return Validate(doc)
	}
	for key, value := range opaque.Fields {
		if !isFlatValue(value) {
			return fmt.Errorf("field %q must be a string, number, boolean or list of strings", key)
		}
	}
	return nil
}

func isFlatValue(v any) bool {
	switch t := v.(type) {
	case nil, string, float64, bool:
		return true
	case []any:
		for _, elem := range t {
			if _, ok := elem.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
