package utils

import "time"

type Clock interface {
	Now() time.Time
	// Today is the current calendar day at midnight UTC.
	Today() time.Time
}

// SystemClock reads the wall clock. Location decides which calendar day "today" is; nil means UTC.
type SystemClock struct {
	Location *time.Location
}

func (s SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(s.Location)
}

func (s SystemClock) Today() time.Time {
	return dateOf(s.Now())
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) Today() time.Time {
	return dateOf(m.FixedNow)
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
