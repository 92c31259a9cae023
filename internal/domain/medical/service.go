package medical

import (
	"context"
	"strings"
	"time"

	"hrops/internal/domain/auth"
	"hrops/internal/platform/cache"
)

type Service struct {
	Store *Store
	Cache *cache.Cache
}

func NewService(store *Store, c *cache.Cache) *Service {
	return &Service{Store: store, Cache: c}
}

// Register validates and stores a medical leave. A non-empty
// officeScope confines the write to employees of that office.
func (s *Service) Register(ctx context.Context, employeeID, leaveType, diagnosis, referenceNumber, institution, documentURL, office, recordedBy, officeScope string, start, end time.Time) (MedicalLeave, error) {
	diagnosis = strings.TrimSpace(diagnosis)
	totalDays, err := Validate(leaveType, diagnosis, start, end)
	if err != nil {
		return MedicalLeave{}, err
	}

	employeeOffice, err := s.Store.EmployeeOffice(ctx, employeeID)
	if err != nil {
		return MedicalLeave{}, err
	}
	if err := auth.CheckOfficeScope(officeScope, employeeOffice); err != nil {
		return MedicalLeave{}, err
	}
	if strings.TrimSpace(office) == "" {
		office = employeeOffice
	}

	ml := MedicalLeave{
		EmployeeID:      employeeID,
		Type:            leaveType,
		StartDate:       start,
		EndDate:         end,
		TotalDays:       totalDays,
		Diagnosis:       diagnosis,
		ReferenceNumber: strings.TrimSpace(referenceNumber),
		Institution:     strings.TrimSpace(institution),
		DocumentURL:     strings.TrimSpace(documentURL),
		Office:          office,
		RecordedBy:      recordedBy,
	}
	id, err := s.Store.Insert(ctx, ml)
	if err != nil {
		return MedicalLeave{}, err
	}
	ml.ID = id

	s.Cache.Invalidate(ctx, "stats:")
	return ml, nil
}

func (s *Service) Get(ctx context.Context, id string) (MedicalLeave, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]MedicalLeave, int, error) {
	return s.Store.List(ctx, filter)
}
