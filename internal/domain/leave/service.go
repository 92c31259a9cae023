package leave

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

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

// Submit validates and creates a pending request. The whole
// read-validate-write sequence runs in one transaction holding a row
// lock on the employee, so two concurrent submissions cannot both pass
// validation against the same quota snapshot. A non-empty officeScope
// confines the write to employees of that office.
func (s *Service) Submit(ctx context.Context, employeeID, reason, requestedBy, officeScope string, start, end time.Time) (LeaveRequest, error) {
	reason = strings.TrimSpace(reason)

	var req LeaveRequest
	err := pgx.BeginFunc(ctx, s.Store.DB, func(tx pgx.Tx) error {
		_, office, err := s.Store.LockEmployeeQuota(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if err := auth.CheckOfficeScope(officeScope, office); err != nil {
			return err
		}

		approved, err := s.Store.ApprovedForEmployeeYear(ctx, tx, employeeID, start.Year())
		if err != nil {
			return err
		}
		quota := RemainingQuota(approved, start.Year())

		days, err := ValidateSubmission(reason, start, end, quota)
		if err != nil {
			return err
		}

		existing, err := s.Store.NonRejectedForEmployee(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if Overlaps(start, end, existing) {
			return ErrOverlap
		}

		req = LeaveRequest{
			EmployeeID:    employeeID,
			StartDate:     start,
			EndDate:       end,
			RequestedDays: days,
			Reason:        reason,
			Status:        StatusPending,
			RequestedBy:   requestedBy,
		}
		id, err := s.Store.Insert(ctx, tx, req)
		if err != nil {
			return err
		}
		req.ID = id
		return nil
	})
	if err != nil {
		return LeaveRequest{}, err
	}

	s.Cache.Invalidate(ctx, "stats:")
	return req, nil
}

// Approve moves a pending request to approved and deducts the days from
// the employee counter. Status change and decrement commit together or
// not at all.
func (s *Service) Approve(ctx context.Context, requestID, approver, comment string) (LeaveRequest, error) {
	var req LeaveRequest
	err := pgx.BeginFunc(ctx, s.Store.DB, func(tx pgx.Tx) error {
		locked, err := s.Store.LockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if locked.Status != StatusPending {
			return ErrInvalidState
		}

		if _, _, err := s.Store.LockEmployeeQuota(ctx, tx, locked.EmployeeID); err != nil {
			return err
		}
		ok, err := s.Store.DecrementQuota(ctx, tx, locked.EmployeeID, locked.RequestedDays)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientQuota
		}

		now := time.Now().UTC()
		if err := s.Store.SetDecision(ctx, tx, requestID, StatusApproved, approver, comment, now); err != nil {
			return err
		}

		req = locked
		req.Status = StatusApproved
		req.ApprovedBy = approver
		req.ApprovedAt = &now
		req.ApprovalComment = comment
		return nil
	})
	if err != nil {
		return LeaveRequest{}, err
	}

	s.Cache.Invalidate(ctx, "stats:")
	return req, nil
}

// Reject moves a pending request to rejected. A comment is mandatory:
// the requester must learn why. No quota effect.
func (s *Service) Reject(ctx context.Context, requestID, approver, comment string) (LeaveRequest, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return LeaveRequest{}, ErrCommentRequired
	}

	var req LeaveRequest
	err := pgx.BeginFunc(ctx, s.Store.DB, func(tx pgx.Tx) error {
		locked, err := s.Store.LockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if locked.Status != StatusPending {
			return ErrInvalidState
		}

		now := time.Now().UTC()
		if err := s.Store.SetDecision(ctx, tx, requestID, StatusRejected, approver, comment, now); err != nil {
			return err
		}

		req = locked
		req.Status = StatusRejected
		req.ApprovedBy = approver
		req.ApprovedAt = &now
		req.ApprovalComment = comment
		return nil
	})
	if err != nil {
		return LeaveRequest{}, err
	}

	s.Cache.Invalidate(ctx, "stats:")
	return req, nil
}

func (s *Service) Get(ctx context.Context, requestID string) (LeaveRequest, error) {
	return s.Store.Get(ctx, requestID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int, error) {
	return s.Store.List(ctx, filter)
}

// Quota reports the employee's remaining allowance for the current
// year, derived from approved requests.
func (s *Service) Quota(ctx context.Context, employeeID string, now time.Time) (int, error) {
	year := now.Year()
	approved, err := s.Store.ApprovedForYear(ctx, employeeID, year)
	if err != nil {
		return 0, err
	}
	return RemainingQuota(approved, year), nil
}
