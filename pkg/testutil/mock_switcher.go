package testutil

import (
	"context"
	"sync"
)

// RecordingSwitcher implements profile.Switcher for testing.
// It records all switch calls for assertion.
type RecordingSwitcher struct {
	mu    sync.RWMutex
	calls []SwitchCall
	err   error
}

// SwitchCall captures one profile switch.
type SwitchCall struct {
	Card    string
	Profile string
}

// NewRecordingSwitcher creates a new recording switcher.
func NewRecordingSwitcher() *RecordingSwitcher {
	return &RecordingSwitcher{calls: make([]SwitchCall, 0)}
}

// Switch records the call and returns the configured error.
func (s *RecordingSwitcher) Switch(_ context.Context, card, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, SwitchCall{Card: card, Profile: profile})
	return s.err
}

// Calls returns all recorded calls.
func (s *RecordingSwitcher) Calls() []SwitchCall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]SwitchCall, len(s.calls))
	copy(result, s.calls)
	return result
}

// SetError makes subsequent calls fail with err.
func (s *RecordingSwitcher) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
