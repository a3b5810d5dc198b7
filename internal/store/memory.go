// Package store provides thread-safe, in-memory storage for analyzer output.
//
// Design rationale: the store holds only derived results — detected
// subscriptions and fraud alerts — so the dashboard endpoints can list them
// after a batch analysis. It never holds transaction history; the outlier
// check always receives history from the caller. The per-user index gives
// O(1) user lookups while full listings are a linear scan over a typically
// small map. A production deployment would swap this for Postgres.
package store

import (
	"sync"

	"subtrack/nlp-api/internal/domain"
)

// Store is a thread-safe in-memory data store.
type Store struct {
	mu sync.RWMutex

	subscriptions map[string]*domain.Subscription
	alerts        map[string]*domain.FraudAlert
	webhooks      map[string]*domain.WebhookConfig

	// Secondary indexes: user ID → slice of record IDs.
	// Maintained on every write so reads stay fast.
	subsByUser   map[string][]string
	alertsByUser map[string][]string
}

// New creates an empty, ready-to-use Store.
func New() *Store {
	return &Store{
		subscriptions: make(map[string]*domain.Subscription),
		alerts:        make(map[string]*domain.FraudAlert),
		webhooks:      make(map[string]*domain.WebhookConfig),
		subsByUser:    make(map[string][]string),
		alertsByUser:  make(map[string][]string),
	}
}

// ─── Analysis results ─────────────────────────────────────────────────────────

// SaveAnalysis persists every subscription and fraud alert from a batch
// result. Records carry their IDs already (assigned by the analyzer).
func (s *Store) SaveAnalysis(result *domain.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range result.Subscriptions {
		sub := result.Subscriptions[i]
		s.subscriptions[sub.ID] = &sub
		s.subsByUser[sub.UserID] = append(s.subsByUser[sub.UserID], sub.ID)
	}
	for i := range result.FraudAlerts {
		alert := result.FraudAlerts[i]
		s.alerts[alert.ID] = &alert
		s.alertsByUser[alert.UserID] = append(s.alertsByUser[alert.UserID], alert.ID)
	}
}

// ListSubscriptions returns stored subscriptions, filtered by user when
// userID is non-empty. Results are in arbitrary order. Subscriptions are
// never mutated after save, so the stored pointers are shared safely.
func (s *Store) ListSubscriptions(userID string) []*domain.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Subscription
	if userID != "" {
		for _, id := range s.subsByUser[userID] {
			if sub, ok := s.subscriptions[id]; ok {
				result = append(result, sub)
			}
		}
		return result
	}
	for _, sub := range s.subscriptions {
		result = append(result, sub)
	}
	return result
}

// ListAlerts returns stored fraud alerts, filtered by user when userID is
// non-empty. Results are in arbitrary order.
//
// Alerts are mutable (UpdateAlertStatus), so callers receive snapshot
// copies, never pointers into the store. Readers can encode or inspect
// them without holding any lock.
func (s *Store) ListAlerts(userID string) []*domain.FraudAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FraudAlert
	if userID != "" {
		for _, id := range s.alertsByUser[userID] {
			if alert, ok := s.alerts[id]; ok {
				cp := *alert
				result = append(result, &cp)
			}
		}
		return result
	}
	for _, alert := range s.alerts {
		cp := *alert
		result = append(result, &cp)
	}
	return result
}

// GetAlert retrieves a snapshot copy of a single fraud alert by ID.
func (s *Store) GetAlert(id string) (*domain.FraudAlert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alert, ok := s.alerts[id]
	if !ok {
		return nil, false
	}
	cp := *alert
	return &cp, true
}

// UpdateAlertStatus transitions an alert's lifecycle status.
// Returns false if the alert does not exist.
func (s *Store) UpdateAlertStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert, ok := s.alerts[id]
	if !ok {
		return false
	}
	alert.Status = status
	return true
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// SaveWebhook persists a webhook configuration.
func (s *Store) SaveWebhook(wh *domain.WebhookConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhooks[wh.ID] = wh
}

// DeleteWebhook removes a webhook by ID. Returns false if not found.
func (s *Store) DeleteWebhook(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.webhooks[id]
	if exists {
		delete(s.webhooks, id)
	}
	return exists
}

// ListActiveWebhooks returns all webhooks that are currently active.
func (s *Store) ListActiveWebhooks() []*domain.WebhookConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.WebhookConfig
	for _, wh := range s.webhooks {
		if wh.Active {
			result = append(result, wh)
		}
	}
	return result
}
