package events

import (
	"context"
	"sync"
	"time"

	"academy-enrollment-api/internal/models"
)

// EventType represents the type of event.
type EventType string

const (
	// EventQuizSubmitted is emitted after a quiz upsert succeeds
	EventQuizSubmitted EventType = "quiz.submitted"
	// EventEnrollmentCreated is emitted after the authoritative enrollment insert
	EventEnrollmentCreated EventType = "enrollment.created"
	// EventReferralRecorded is emitted after a referral is attributed
	EventReferralRecorded EventType = "referral.recorded"
	// EventBonusIssued is emitted when a bonus lands for a referrer
	EventBonusIssued EventType = "bonus.issued"
)

// Event represents an event in the system.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      interface{}
}

// QuizSubmittedData contains data for quiz submission events.
type QuizSubmittedData struct {
	UserID     string
	ResponseID string
}

// EnrollmentCreatedData contains data for enrollment events.
type EnrollmentCreatedData struct {
	Enrollment models.Enrollment
	CohortID   string
}

// ReferralRecordedData contains data for referral attribution events.
type ReferralRecordedData struct {
	Referral models.Referral
}

// BonusIssuedData contains data for bonus issuance events.
type BonusIssuedData struct {
	Bonus models.Bonus
}

// Handler is a function that handles events.
type Handler func(ctx context.Context, event Event) error

// Manager manages event handlers and event publishing.
type Manager struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	enabled  bool
}

// NewManager creates a new event manager.
func NewManager(enabled bool) *Manager {
	return &Manager{
		handlers: make(map[EventType][]Handler),
		enabled:  enabled,
	}
}

// Subscribe subscribes a handler to a specific event type.
func (m *Manager) Subscribe(eventType EventType, handler Handler) {
	if !m.enabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Publish publishes an event to all subscribed handlers. Handlers run
// asynchronously and their errors are dropped; nothing on the request
// path waits on them.
func (m *Manager) Publish(ctx context.Context, eventType EventType, data interface{}) {
	if !m.enabled {
		return
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	// The request context is cancelled once the response is written;
	// handlers outlive it, so they get a detached copy.
	detached := context.WithoutCancel(ctx)

	for _, handler := range handlers {
		go func(h Handler) {
			_ = h(detached, event)
		}(handler)
	}
}

// PublishQuizSubmitted publishes a quiz submission event.
func (m *Manager) PublishQuizSubmitted(ctx context.Context, userID, responseID string) {
	m.Publish(ctx, EventQuizSubmitted, QuizSubmittedData{
		UserID:     userID,
		ResponseID: responseID,
	})
}

// PublishEnrollmentCreated publishes an enrollment event.
func (m *Manager) PublishEnrollmentCreated(ctx context.Context, e models.Enrollment, cohortID string) {
	m.Publish(ctx, EventEnrollmentCreated, EnrollmentCreatedData{
		Enrollment: e,
		CohortID:   cohortID,
	})
}

// PublishReferralRecorded publishes a referral attribution event.
func (m *Manager) PublishReferralRecorded(ctx context.Context, r models.Referral) {
	m.Publish(ctx, EventReferralRecorded, ReferralRecordedData{Referral: r})
}

// PublishBonusIssued publishes a bonus issuance event.
func (m *Manager) PublishBonusIssued(ctx context.Context, b models.Bonus) {
	m.Publish(ctx, EventBonusIssued, BonusIssuedData{Bonus: b})
}

// Shutdown shuts down the event manager.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled = false
	m.handlers = make(map[EventType][]Handler)
}
