package shared

import "time"

// Clock abstracts wall time so phase timings and host polling can be faked in tests.
// Game time is the world year and never comes from a Clock.
type Clock interface {
	Now() time.Time
}

// RealClock reports system time in UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock is advanced explicitly by tests.
type MockClock struct {
	CurrentTime time.Time
	// Step, when set, is added after every Now call so consecutive reads differ.
	Step time.Duration
}

func NewMockClock(start time.Time, step time.Duration) *MockClock {
	return &MockClock{CurrentTime: start, Step: step}
}

func (m *MockClock) Now() time.Time {
	now := m.CurrentTime
	m.CurrentTime = m.CurrentTime.Add(m.Step)
	return now
}

func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}
