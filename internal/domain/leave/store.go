package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `
    id, employee_id, start_date, end_date, requested_days, reason, status,
    requested_by, COALESCE(approved_by, ''), approved_at,
    COALESCE(approval_comment, ''), created_at`

func scanRequest(row pgx.Row) (LeaveRequest, error) {
	var req LeaveRequest
	err := row.Scan(&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate,
		&req.RequestedDays, &req.Reason, &req.Status, &req.RequestedBy,
		&req.ApprovedBy, &req.ApprovedAt, &req.ApprovalComment, &req.CreatedAt)
	return req, err
}

func collectRequests(rows pgx.Rows) ([]LeaveRequest, error) {
	defer rows.Close()
	var out []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// NonRejectedForEmployee returns the requests that block a new range:
// everything still pending plus everything approved.
func (s *Store) NonRejectedForEmployee(ctx context.Context, tx pgx.Tx, employeeID string) ([]LeaveRequest, error) {
	rows, err := tx.Query(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE employee_id = $1 AND status <> $2
  `, employeeID, StatusRejected)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func approvedForEmployeeYear(ctx context.Context, q querier, employeeID string, year int) ([]LeaveRequest, error) {
	rows, err := q.Query(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE employee_id = $1 AND status = $2
      AND EXTRACT(YEAR FROM start_date) = $3
  `, employeeID, StatusApproved, year)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (s *Store) ApprovedForEmployeeYear(ctx context.Context, tx pgx.Tx, employeeID string, year int) ([]LeaveRequest, error) {
	return approvedForEmployeeYear(ctx, tx, employeeID, year)
}

// ApprovedForYear is the pool-side variant used by quota reads outside
// the submit transaction.
func (s *Store) ApprovedForYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error) {
	return approvedForEmployeeYear(ctx, s.DB, employeeID, year)
}

func (s *Store) Insert(ctx context.Context, tx pgx.Tx, req LeaveRequest) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, start_date, end_date, requested_days, reason, status, requested_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, req.EmployeeID, req.StartDate, req.EndDate, req.RequestedDays, req.Reason, req.Status, req.RequestedBy).Scan(&id)
	return id, err
}

// LockRequest reads a request under FOR UPDATE so approve and reject
// serialize on the same row.
func (s *Store) LockRequest(ctx context.Context, tx pgx.Tx, requestID string) (LeaveRequest, error) {
	return scanRequest(tx.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
    FOR UPDATE
  `, requestID))
}

// LockEmployeeQuota pins the employee row for the duration of the
// transaction and returns the stored counter and the employee's office.
func (s *Store) LockEmployeeQuota(ctx context.Context, tx pgx.Tx, employeeID string) (int, string, error) {
	var remaining int
	var office string
	err := tx.QueryRow(ctx, `
    SELECT remaining_leave_days, office
    FROM employees
    WHERE id = $1 AND active
    FOR UPDATE
  `, employeeID).Scan(&remaining, &office)
	return remaining, office, err
}

// DecrementQuota applies the approval side effect. The condition keeps
// the counter from going negative even if two approvals race.
func (s *Store) DecrementQuota(ctx context.Context, tx pgx.Tx, employeeID string, days int) (bool, error) {
	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET remaining_leave_days = remaining_leave_days - $1, updated_at = now()
    WHERE id = $2 AND remaining_leave_days >= $1
  `, days, employeeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) SetDecision(ctx context.Context, tx pgx.Tx, requestID, status, approver, comment string, at time.Time) error {
	_, err := tx.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, approved_by = $2, approved_at = $3, approval_comment = $4
    WHERE id = $5
  `, status, approver, at, comment, requestID)
	return err
}

func (s *Store) Get(ctx context.Context, requestID string) (LeaveRequest, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, requestID))
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Office     string
	Limit      int
	Offset     int
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND lr.employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}
	if filter.Office != "" {
		args = append(args, filter.Office)
		where += fmt.Sprintf(" AND lr.employee_id IN (SELECT id FROM employees WHERE office = $%d)", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests lr"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM leave_requests lr%s ORDER BY lr.created_at DESC LIMIT $%d OFFSET $%d",
		requestColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
