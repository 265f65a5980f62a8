package repository

import "time"

// Nominee columns are NULL for categories without nominees (LEFT JOIN)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
