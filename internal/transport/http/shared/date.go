package shared

import "time"

// ParseDate accepts RFC3339 or plain YYYY-MM-DD, the two shapes day
// sheets and leave ranges arrive in. Empty input is the zero time, used
// by the list filters to mean "no bound".
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
