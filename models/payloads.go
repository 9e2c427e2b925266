package models

import "encoding/json"

// EventEnvelope holds the fields attached to every tracked event.
type EventEnvelope struct {
	Timestamp string `json:"timestamp,omitempty"`
	URL       string `json:"url,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// EventPayload is the decoded event_data of an AnalyticsEvent.
type EventPayload interface {
	EventType() string
}

type PageViewData struct {
	EventEnvelope
	Page     string `json:"page,omitempty"`
	Referrer string `json:"referrer,omitempty"`
}

func (PageViewData) EventType() string { return EventPageView }

type WhatsAppClickData struct {
	EventEnvelope
	Service string `json:"service,omitempty"`
	Action  string `json:"action,omitempty"`
}

func (WhatsAppClickData) EventType() string { return EventWhatsAppClick }

// OpaquePayload keeps events of types this service does not know about.
type OpaquePayload struct {
	Type string
	Data map[string]any
}

func (o OpaquePayload) EventType() string { return o.Type }

// DecodePayload never fails: malformed or missing data yields the zero value
// of the matching variant so aggregations can read fields without checks.
func DecodePayload(eventType string, raw []byte) EventPayload {
	switch eventType {
	case EventPageView:
		var p PageViewData
		_ = json.Unmarshal(raw, &p)
		return p
	case EventWhatsAppClick:
		var p WhatsAppClickData
		_ = json.Unmarshal(raw, &p)
		return p
	default:
		var data map[string]any
		_ = json.Unmarshal(raw, &data)
		return OpaquePayload{Type: eventType, Data: data}
	}
}
