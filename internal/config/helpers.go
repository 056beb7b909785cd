package config

import "github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"

func stringPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64    { return &n }
func datePtr(d Date) *Date       { return &d }

func calendarPtr(f semver.CalendarFormat) *semver.CalendarFormat {
	return &f
}
