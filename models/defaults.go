package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// fallbackNamespace derives stable ids for the built-in sample rows.
var fallbackNamespace = uuid.MustParse("6f1c2a4e-3b8d-4f5a-9c7e-2d1b0a9e8f71")

func fallbackID(kind string, n int) uuid.UUID {
	return uuid.NewSHA1(fallbackNamespace, []byte(fmt.Sprintf("%s-%d", kind, n)))
}

// DefaultSection returns the document the public site renders when a
// section has never been saved. Unknown sections default to an empty document.
func DefaultSection(section string) SectionDocument {
	switch section {
	case SectionHero:
		return HeroContent{
			Title:            "Transform Your Beauty",
			Subtitle:         "with Nessa Glam Studio",
			Description:      "Johannesburg's premier destination for professional hair installation and makeup artistry. Experience luxury beauty services that enhance your natural radiance and boost your confidence.",
			CTAText:          "Book Now on WhatsApp",
			CTASecondaryText: "View Our Transformations",
		}
	case SectionAbout:
		return AboutContent{
			Title:       "About Nessa Glam Studio",
			Description: "Welcome to Nessa Glam Studio, Johannesburg's premier destination for professional hair installation and makeup artistry. Located in the heart of South Africa's vibrant beauty scene, we specialize in transforming your natural beauty into stunning, confidence-boosting looks.",
			Mission:     "To empower every client with confidence through exceptional beauty services, making luxury accessible and creating unforgettable transformations in Johannesburg's beauty landscape.",
		}
	case SectionBooking:
		return BookingContent{
			Method:         BookingWhatsApp,
			Phone:          "+27 81 062 5473",
			Email:          "info@nessaglamstudio.com",
			WhatsAppNumber: "27810625473",
		}
	default:
		return OpaqueContent{Name: section, Fields: map[string]any{}}
	}
}

// DefaultServices is the sample list shown when the services table is unreachable.
func DefaultServices(now time.Time) []ServiceItem {
	rows := []struct {
		title, description, price, duration, icon string
		features                                  []string
	}{
		{"Hair Installation", "Professional weaves, closures, frontals, and extensions using premium quality hair.", "From R800", "2-4 hours", "Scissors",
			[]string{"Virgin Hair Installation", "Closure & Frontal Application", "Hair Extensions", "Protective Styling"}},
		{"Makeup Artistry", "Flawless makeup application for all occasions using high-end cosmetic products.", "From R400", "1-2 hours", "Palette",
			[]string{"Glam Makeup", "Natural Look", "Special Occasions", "Photography Ready"}},
		{"Bridal Packages", "Complete bridal beauty transformation including hair, makeup, and consultation.", "From R2500", "4-6 hours", "Crown",
			[]string{"Bridal Consultation", "Trial Session", "Wedding Day Service", "Touch-up Kit"}},
		{"Special Events", "Glamorous styling for parties, photoshoots, and special celebrations.", "From R600", "2-3 hours", "Sparkles",
			[]string{"Event Styling", "Group Bookings", "Photoshoot Ready", "Custom Looks"}},
	}

	services := make([]ServiceItem, 0, len(rows))
	for i, r := range rows {
		services = append(services, ServiceItem{
			OrderedItem: OrderedItem{
				ID:         fallbackID("service", i+1),
				OrderIndex: i + 1,
				IsActive:   true,
				CreatedAt:  now,
				UpdatedAt:  now,
			},
			Title:       r.title,
			Description: r.description,
			Features:    r.features,
			Price:       r.price,
			Duration:    r.duration,
			Icon:        r.icon,
		})
	}
	return services
}

// DefaultGalleryImages is the sample portfolio shown when the gallery table is unreachable.
func DefaultGalleryImages(now time.Time) []GalleryImage {
	return []GalleryImage{
		{
			OrderedItem: OrderedItem{ID: fallbackID("gallery", 1), OrderIndex: 1, IsActive: true, CreatedAt: now, UpdatedAt: now},
			URL:         "https://images.pexels.com/photos/3065209/pexels-photo-3065209.jpeg?auto=compress&cs=tinysrgb&w=600&h=600&fit=crop",
			Alt:         "Professional bridal makeup transformation - Nessa Glam Studio Johannesburg",
			Category:    "Bridal Makeup",
			Title:       "Elegant Bridal Look",
		},
		{
			OrderedItem: OrderedItem{ID: fallbackID("gallery", 2), OrderIndex: 2, IsActive: true, CreatedAt: now, UpdatedAt: now},
			URL:         "https://images.pexels.com/photos/3065171/pexels-photo-3065171.jpeg?auto=compress&cs=tinysrgb&w=600&h=600&fit=crop",
			Alt:         "Hair installation weave service - Professional hair stylist Johannesburg",
			Category:    "Hair Installation",
			Title:       "Luxury Hair Weave",
		},
	}
}
