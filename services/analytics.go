package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"glamstudio-backend/models"
	"glamstudio-backend/store"
	"glamstudio-backend/utils"

	"gorm.io/datatypes"
)

var eventTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// NewEvent builds an analytics event, stamping the envelope fields into the
// payload the way the site tracker does.
func NewEvent(eventType string, data map[string]any, env models.EventEnvelope, at time.Time) (models.AnalyticsEvent, error) {
	if !eventTypePattern.MatchString(eventType) {
		return models.AnalyticsEvent{}, invalid("event_type must be lowercase letters, digits or '_'")
	}

	payload := make(map[string]any, len(data)+3)
	for k, v := range data {
		payload[k] = v
	}
	payload["timestamp"] = at.UTC().Format(time.RFC3339)
	if env.URL != "" {
		payload["url"] = env.URL
	}
	if env.UserAgent != "" {
		payload["userAgent"] = env.UserAgent
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return models.AnalyticsEvent{}, invalid("event_data is not serializable: " + err.Error())
	}
	return models.AnalyticsEvent{
		EventType: eventType,
		EventData: datatypes.JSON(raw),
		CreatedAt: at.UTC(),
	}, nil
}

// AnalyticsRecorder appends events in the background. Submit never blocks
// and never reports store failures to the caller.
type AnalyticsRecorder struct {
	events  store.Events
	queue   chan models.AnalyticsEvent
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewAnalyticsRecorder(events store.Events, queueSize int, logger *slog.Logger) *AnalyticsRecorder {
	if queueSize <= 0 {
		queueSize = 256
	}
	r := &AnalyticsRecorder{
		events:  events,
		queue:   make(chan models.AnalyticsEvent, queueSize),
		timeout: 5 * time.Second,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Submit queues event and reports whether it was accepted. A full queue or a
// closed recorder drops the event.
func (r *AnalyticsRecorder) Submit(event models.AnalyticsEvent) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		analyticsEvents.WithLabelValues("dropped").Inc()
		return false
	}
	select {
	case r.queue <- event:
		return true
	default:
		analyticsEvents.WithLabelValues("dropped").Inc()
		r.logger.Warn("analytics queue full, dropping event", "event_type", event.EventType)
		return false
	}
}

func (r *AnalyticsRecorder) run() {
	defer close(r.done)
	for event := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := r.events.Insert(ctx, &event)
		cancel()
		if err != nil {
			analyticsEvents.WithLabelValues("failed").Inc()
			r.logger.Warn("analytics event not recorded", "event_type", event.EventType, "error", err)
			continue
		}
		analyticsEvents.WithLabelValues("recorded").Inc()
	}
}

// Close stops accepting events and waits for the queue to drain.
func (r *AnalyticsRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AnalyticsSummary is the dashboard view over a window of days.
type AnalyticsSummary struct {
	Range           string          `json:"range"`
	TotalPageViews  int             `json:"totalPageViews"`
	WhatsAppClicks  int             `json:"whatsappClicks"`
	PopularServices []ServiceClicks `json:"popularServices"`
	RecentActivity  []ActivityEntry `json:"recentActivity"`
	DailyStats      []DailyStat     `json:"dailyStats"`
	// Fallback is set when the numbers are placeholders because the store
	// could not be read.
	Fallback bool `json:"fallback"`
}

type ServiceClicks struct {
	Service string `json:"service"`
	Clicks  int    `json:"clicks"`
}

type ActivityEntry struct {
	EventType string         `json:"event_type"`
	EventData datatypes.JSON `json:"event_data"`
	CreatedAt time.Time      `json:"created_at"`
}

type DailyStat struct {
	Date   string `json:"date"`
	Views  int    `json:"views"`
	Clicks int    `json:"clicks"`
}

const (
	popularServicesLimit = 4
	recentActivityLimit  = 10
)

var allowedRanges = map[string]int{"7d": 7, "30d": 30, "90d": 90}

// ParseRange accepts 7d, 30d or 90d; anything else means 7d.
func ParseRange(raw string) (string, int) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if days, ok := allowedRanges[raw]; ok {
		return raw, days
	}
	return "7d", 7
}

type AnalyticsService struct {
	events   store.Events
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

func NewAnalyticsService(events store.Events, location *time.Location, logger *slog.Logger) *AnalyticsService {
	if location == nil {
		location = time.UTC
	}
	return &AnalyticsService{events: events, location: location, logger: logger, now: time.Now}
}

// Summary aggregates the last N calendar days including today. It always
// returns a populated summary: a failed read yields placeholder data.
func (s *AnalyticsService) Summary(ctx context.Context, rawRange string) AnalyticsSummary {
	label, days := ParseRange(rawRange)
	now := s.now().In(s.location)
	start := utils.BeginningOfDay(now).AddDate(0, 0, -(days - 1))

	events, err := s.events.Between(ctx, start, now)
	if err != nil {
		s.logger.Warn("analytics read failed, serving placeholder data", "range", label, "error", err)
		fallbackReads.WithLabelValues("analytics").Inc()
		return PlaceholderSummary(label, days, now)
	}
	return Aggregate(events, label, days, now)
}

// Aggregate computes the summary from events ordered oldest first. Buckets
// use now's location.
func Aggregate(events []models.AnalyticsEvent, label string, days int, now time.Time) AnalyticsSummary {
	summary := AnalyticsSummary{Range: label}
	start := utils.BeginningOfDay(now).AddDate(0, 0, -(days - 1))
	summary.DailyStats = emptyDays(start, days)

	clicks := map[string]int{}
	var firstSeen []string
	for _, ev := range events {
		day := utils.DaysBetween(start, ev.CreatedAt.In(now.Location()))
		inWindow := day >= 0 && day < days

		switch ev.EventType {
		case models.EventPageView:
			summary.TotalPageViews++
			if inWindow {
				summary.DailyStats[day].Views++
			}
		case models.EventWhatsAppClick:
			summary.WhatsAppClicks++
			if inWindow {
				summary.DailyStats[day].Clicks++
			}
			data, _ := models.DecodePayload(ev.EventType, ev.EventData).(models.WhatsAppClickData)
			if name := strings.TrimSpace(data.Service); name != "" {
				if _, ok := clicks[name]; !ok {
					firstSeen = append(firstSeen, name)
				}
				clicks[name]++
			}
		}
	}

	summary.PopularServices = topServices(clicks, firstSeen, popularServicesLimit)
	summary.RecentActivity = recentActivity(events, recentActivityLimit)
	return summary
}

func emptyDays(start time.Time, days int) []DailyStat {
	stats := make([]DailyStat, days)
	for i := range stats {
		stats[i].Date = start.AddDate(0, 0, i).Format(time.DateOnly)
	}
	return stats
}

// topServices orders by clicks descending; equal counts keep first-seen order.
func topServices(clicks map[string]int, firstSeen []string, limit int) []ServiceClicks {
	out := make([]ServiceClicks, 0, len(firstSeen))
	for _, name := range firstSeen {
		out = append(out, ServiceClicks{Service: name, Clicks: clicks[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Clicks > out[j].Clicks
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func recentActivity(events []models.AnalyticsEvent, limit int) []ActivityEntry {
	out := make([]ActivityEntry, 0, limit)
	for i := len(events) - 1; i >= 0 && len(out) < limit; i-- {
		ev := events[i]
		out = append(out, ActivityEntry{EventType: ev.EventType, EventData: ev.EventData, CreatedAt: ev.CreatedAt})
	}
	return out
}

// PlaceholderSummary is the deterministic demo dataset shown when analytics
// cannot be read.
func PlaceholderSummary(label string, days int, now time.Time) AnalyticsSummary {
	start := utils.BeginningOfDay(now).AddDate(0, 0, -(days - 1))
	stats := emptyDays(start, days)
	for i := range stats {
		stats[i].Views = 50 + (i*37)%50
		stats[i].Clicks = 5 + (i*7)%20
	}

	activity := []ActivityEntry{
		{EventType: models.EventWhatsAppClick, EventData: datatypes.JSON(`{"service":"Bridal Packages"}`), CreatedAt: now},
		{EventType: models.EventPageView, EventData: datatypes.JSON(`{"page":"services"}`), CreatedAt: now},
		{EventType: models.EventWhatsAppClick, EventData: datatypes.JSON(`{"service":"Hair Installation"}`), CreatedAt: now},
	}

	return AnalyticsSummary{
		Range:          label,
		TotalPageViews: 2341,
		WhatsAppClicks: 156,
		PopularServices: []ServiceClicks{
			{Service: "Bridal Packages", Clicks: 45},
			{Service: "Hair Installation", Clicks: 38},
			{Service: "Makeup Artistry", Clicks: 32},
			{Service: "Special Events", Clicks: 25},
		},
		RecentActivity: activity,
		DailyStats:     stats,
		Fallback:       true,
	}
}

