package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrops/internal/platform/cache"
)

var ErrNameRequired = errors.New("full name is required")

type Service struct {
	Store *Store
	Cache *cache.Cache
}

func NewService(store *Store, c *cache.Cache) *Service {
	return &Service{Store: store, Cache: c}
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	return s.Store.Get(ctx, employeeID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Employee, int, error) {
	return s.Store.List(ctx, filter)
}

func (s *Service) Offices(ctx context.Context) ([]string, error) {
	return s.Store.Offices(ctx)
}

func (s *Service) Create(ctx context.Context, fullName, office string) (string, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ErrNameRequired
	}
	id, err := s.Store.Create(ctx, fullName, strings.TrimSpace(office))
	if err != nil {
		return "", err
	}
	s.Cache.Invalidate(ctx, "stats:")
	return id, nil
}

func (s *Service) Update(ctx context.Context, employeeID string, update Update) error {
	if update.FullName == nil && update.Office == nil && update.Active == nil {
		return nil
	}
	if err := s.Store.Update(ctx, employeeID, update); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, "stats:")
	return nil
}

// Stats serves the current-year summary, cached until the next write to
// any attendance, leave, or medical table.
func (s *Service) Stats(ctx context.Context, employeeID string, now time.Time) (YearStats, error) {
	key := fmt.Sprintf("stats:employee:%s:%d", employeeID, now.Year())

	var cached YearStats
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	stats, err := s.Store.YearStats(ctx, employeeID, now.Year())
	if err != nil {
		return YearStats{}, err
	}
	s.Cache.Set(ctx, key, stats)
	return stats, nil
}
