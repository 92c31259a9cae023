package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hrops/internal/domain/workday"
	"hrops/internal/platform/cache"
)

var (
	ErrInvalidStatus  = errors.New("invalid attendance status")
	ErrInvalidCheckIn = errors.New("invalid check-in time")
	ErrNoEntries      = errors.New("day sheet has no entries")
)

type Service struct {
	Store *Store
	Cache *cache.Cache
}

func NewService(store *Store, c *cache.Cache) *Service {
	return &Service{Store: store, Cache: c}
}

type DaySheetResult struct {
	Date     time.Time `json:"date"`
	Saved    int       `json:"saved"`
	Saturday bool      `json:"saturday"`
}

// RecordDay upserts the day sheet for one office: one entry per
// employee, tagged with the Saturday flag derived from the date.
func (s *Service) RecordDay(ctx context.Context, date time.Time, office, recordedBy string, entries []Entry) (DaySheetResult, error) {
	if len(entries) == 0 {
		return DaySheetResult{}, ErrNoEntries
	}
	for _, entry := range entries {
		if !ValidStatus(entry.Status) {
			return DaySheetResult{}, fmt.Errorf("%w: %q", ErrInvalidStatus, entry.Status)
		}
		if entry.CheckIn != "" && !ValidCheckIn(entry.CheckIn) {
			return DaySheetResult{}, fmt.Errorf("%w: %q", ErrInvalidCheckIn, entry.CheckIn)
		}
	}

	saturday := workday.IsSaturday(date)
	saved := 0
	for _, entry := range entries {
		checkIn := entry.CheckIn
		if !RequiresCheckIn(entry.Status) {
			checkIn = ""
		}
		rec := Record{
			EmployeeID: entry.EmployeeID,
			Date:       date,
			Status:     entry.Status,
			CheckIn:    checkIn,
			IsSaturday: saturday,
			Office:     office,
			RecordedBy: recordedBy,
			Note:       entry.Note,
		}
		if _, err := s.Store.Upsert(ctx, rec); err != nil {
			return DaySheetResult{}, fmt.Errorf("record for employee %s: %w", entry.EmployeeID, err)
		}
		saved++
	}

	s.Cache.Invalidate(ctx, "stats:")
	return DaySheetResult{Date: date, Saved: saved, Saturday: saturday}, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	return s.Store.List(ctx, filter)
}

type PeriodStatistics struct {
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Office  string         `json:"office,omitempty"`
	ByState map[string]int `json:"byState"`
	Total   int            `json:"total"`
}

// Statistics summarizes a month's records, cached until the next write.
func (s *Service) Statistics(ctx context.Context, year, month int, office string) (PeriodStatistics, error) {
	key := fmt.Sprintf("stats:attendance:%d-%02d:%s", year, month, office)

	var cached PeriodStatistics
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	counts, err := s.Store.MonthlyCounts(ctx, year, month, office)
	if err != nil {
		return PeriodStatistics{}, err
	}

	stats := PeriodStatistics{Year: year, Month: month, Office: office, ByState: map[string]int{}}
	for _, c := range counts {
		stats.ByState[StatusPresent] += c.Present
		stats.ByState[StatusLate] += c.Late
		stats.ByState[StatusAbsent] += c.Absent
		stats.Total += c.Worked
	}

	s.Cache.Set(ctx, key, stats)
	return stats, nil
}
