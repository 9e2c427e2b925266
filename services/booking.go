package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const StudioName = "Nessa Glam Studio"

// BookingLinks are the deep links a visitor can use to reach the studio.
// Primary is the one matching the configured booking method.
type BookingLinks struct {
	Method   string `json:"method"`
	Primary  string `json:"primary"`
	WhatsApp string `json:"whatsapp"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// encodeComponent escapes s for a query value using %20 for spaces, which
// wa.me and mail clients expect.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildLinks renders the links for booking with message as the prefilled
// text. subject is used for the mailto link.
func BuildLinks(booking models.BookingContent, message, subject string) BookingLinks {
	links := BookingLinks{Method: booking.Method, Message: message}

	links.WhatsApp = "https://wa.me/" + digitsOnly(booking.WhatsAppNumber)
	if message != "" {
		links.WhatsApp += "?text=" + encodeComponent(message)
	}

	if phone := utils.CleanPhone(booking.Phone); phone != "" {
		links.Phone = "tel:" + phone
	}

	if booking.Email != "" {
		query := "subject=" + encodeComponent(subject)
		if message != "" {
			query += "&body=" + encodeComponent(message)
		}
		links.Email = "mailto:" + booking.Email + "?" + query
	}

	switch booking.Method {
	case models.BookingPhone:
		links.Primary = links.Phone
	case models.BookingEmail:
		links.Primary = links.Email
	default:
		links.Primary = links.WhatsApp
	}
	if links.Primary == "" {
		links.Primary = links.WhatsApp
	}
	return links
}

func QuickMessage() string {
	return fmt.Sprintf("Hi! I would like to book an appointment at %s. Please let me know your available slots.", StudioName)
}

// ServiceMessage is the enquiry text for a single service.
func ServiceMessage(service string) string {
	service = strings.TrimSpace(service)
	if service == "" {
		return QuickMessage()
	}
	return fmt.Sprintf("Hi! I'm interested in booking %s at %s. Could you please provide more details and available appointment slots?", service, StudioName)
}

// BookingRequest is the appointment form submitted by a visitor.
type BookingRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Service string `json:"service" validate:"required,max=120"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
	Message string `json:"message" validate:"max=2000"`
}

func (r BookingRequest) Validate() error {
	err := models.Validate(r)
	fields := models.FieldErrors(err)
	if err != nil && fields == nil {
		return invalid(err.Error())
	}
	if r.Phone != "" && !utils.ValidatePhone(r.Phone) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["phone"] = "must be a valid phone number"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "booking request is invalid", Fields: fields}
	}
	return nil
}

// RequestMessage renders the appointment message sent to the studio.
func RequestMessage(r BookingRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi! I'd like to book an appointment at %s.\n\n", StudioName)
	b.WriteString("*Client Details:*\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\n\n", r.Name, r.Email, r.Phone)
	b.WriteString("*Service Details:*\n")
	fmt.Fprintf(&b, "Service: %s\nPreferred Date: %s\nPreferred Time: %s\n\n", r.Service, r.Date, r.Time)
	b.WriteString("*Additional Message:*\n")
	fmt.Fprintf(&b, "%s\n\n", r.Message)
	b.WriteString("Please confirm my appointment. Thank you!")
	return b.String()
}

// Notifier delivers a booking message to the studio.
type Notifier interface {
	Notify(ctx context.Context, to, body string) error
}

// TwilioNotifier sends WhatsApp messages through the Twilio REST API.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioNotifier(accountSid, authToken, from string) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func whatsappAddress(number string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "whatsapp:")
	if !strings.HasPrefix(number, "+") {
		number = "+" + digitsOnly(number)
	}
	return "whatsapp:" + number
}

func (n *TwilioNotifier) Notify(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(whatsappAddress(n.from))
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid == nil {
		return errors.New("twilio create message: no SID returned")
	}
	return nil
}

// EventSink accepts analytics events without blocking.
type EventSink interface {
	Submit(event models.AnalyticsEvent) bool
}

type BookingService struct {
	content  *ContentService
	events   EventSink
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration

	wg sync.WaitGroup
}

// NewBookingService wires booking links to the booking section. notifier may
// be nil, in which case requests are not forwarded.
func NewBookingService(content *ContentService, events EventSink, notifier Notifier, logger *slog.Logger) *BookingService {
	return &BookingService{
		content:  content,
		events:   events,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		timeout:  10 * time.Second,
	}
}

// Link returns the links for a service enquiry and records a click.
func (s *BookingService) Link(ctx context.Context, service string, env models.EventEnvelope) BookingLinks {
	links := BuildLinks(s.content.Booking(ctx), ServiceMessage(service), "Booking enquiry")
	s.track(service, "service_enquiry", env)
	return links
}

// Request validates the form, records a click and forwards the message to
// the studio in the background.
func (s *BookingService) Request(ctx context.Context, req BookingRequest, env models.EventEnvelope) (BookingLinks, error) {
	if err := req.Validate(); err != nil {
		return BookingLinks{}, err
	}

	booking := s.content.Booking(ctx)
	message := RequestMessage(req)
	links := BuildLinks(booking, message, "Appointment request: "+req.Service)
	s.track(req.Service, "booking_request", env)

	if s.notifier != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			nctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			if err := s.notifier.Notify(nctx, booking.WhatsAppNumber, message); err != nil {
				s.logger.Warn("booking notification failed", "service", req.Service, "error", err)
				return
			}
			s.logger.Info("booking notification sent", "service", req.Service)
		}()
	}
	return links, nil
}

// Wait blocks until in-flight notifications finish.
func (s *BookingService) Wait() {
	s.wg.Wait()
}

func (s *BookingService) track(service, action string, env models.EventEnvelope) {
	if s.events == nil {
		return
	}
	data := map[string]any{"action": action}
	if service != "" {
		data["service"] = service
	}
	event, err := NewEvent(models.EventWhatsAppClick, data, env, s.now())
	if err != nil {
		s.logger.Warn("booking click not tracked", "error", err)
		return
	}
	s.events.Submit(event)
}
