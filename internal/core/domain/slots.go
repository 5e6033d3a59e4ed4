package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"

	openingHour = 8
	closingHour = 18
)

// WorkingHours returns the bookable slot start times of a provider's day.
func WorkingHours() []string {
	hours := make([]string, 0, closingHour-openingHour)
	for h := openingHour; h < closingHour; h++ {
		hours = append(hours, fmt.Sprintf("%02d:00", h))
	}
	return hours
}

// FreeSlots returns the working hours not present in booked.
func FreeSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}
	var free []string
	for _, h := range WorkingHours() {
		if _, ok := taken[h]; !ok {
			free = append(free, h)
		}
	}
	return free
}

// IsWorkingHour reports whether hour is one of the bookable slots.
func IsWorkingHour(hour string) bool {
	for _, h := range WorkingHours() {
		if h == hour {
			return true
		}
	}
	return false
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return d, nil
}
