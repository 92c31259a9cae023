package employee

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = "id, full_name, office, active, remaining_leave_days, created_at, updated_at"

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&e.ID, &e.FullName, &e.Office, &e.Active, &e.RemainingLeaveDays, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

type ListFilter struct {
	Office     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Office != "" {
		args = append(args, filter.Office)
		where += fmt.Sprintf(" AND office = $%d", len(args))
	}
	if filter.ActiveOnly {
		where += " AND active"
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM employees%s ORDER BY full_name LIMIT $%d OFFSET $%d",
		employeeColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.Office, &e.Active, &e.RemainingLeaveDays, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (s *Store) Create(ctx context.Context, fullName, office string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (full_name, office)
    VALUES ($1, $2)
    RETURNING id
  `, fullName, office).Scan(&id)
	return id, err
}

type Update struct {
	FullName *string
	Office   *string
	Active   *bool
}

func (s *Store) Update(ctx context.Context, employeeID string, update Update) error {
	set := "updated_at = now()"
	args := []any{}
	if update.FullName != nil {
		args = append(args, *update.FullName)
		set += fmt.Sprintf(", full_name = $%d", len(args))
	}
	if update.Office != nil {
		args = append(args, *update.Office)
		set += fmt.Sprintf(", office = $%d", len(args))
	}
	if update.Active != nil {
		args = append(args, *update.Active)
		set += fmt.Sprintf(", active = $%d", len(args))
	}
	args = append(args, employeeID)
	_, err := s.DB.Exec(ctx, fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", set, len(args)), args...)
	return err
}

func (s *Store) Offices(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT DISTINCT office FROM employees ORDER BY office")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var office string
		if err := rows.Scan(&office); err != nil {
			return nil, err
		}
		out = append(out, office)
	}
	return out, rows.Err()
}

// YearStats mirrors the dashboard summary the original computed from
// the raw attendance, leave, and medical frames.
func (s *Store) YearStats(ctx context.Context, employeeID string, year int) (YearStats, error) {
	stats := YearStats{Year: year}

	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1) FILTER (WHERE status = 'present'),
      COUNT(1) FILTER (WHERE status = 'absent'),
      COUNT(1) FILTER (WHERE status = 'late'),
      COUNT(1) FILTER (WHERE status = 'present' AND is_saturday)
    FROM attendance_records
    WHERE employee_id = $1 AND EXTRACT(YEAR FROM date) = $2
  `, employeeID, year).Scan(&stats.PresentDays, &stats.AbsentDays, &stats.LateDays, &stats.SaturdaysWorked)
	if err != nil {
		return stats, err
	}

	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM medical_leaves
    WHERE employee_id = $1 AND EXTRACT(YEAR FROM start_date) = $2
  `, employeeID, year).Scan(&stats.MedicalLeaves); err != nil {
		return stats, err
	}

	err = s.DB.QueryRow(ctx, "SELECT remaining_leave_days FROM employees WHERE id = $1", employeeID).Scan(&stats.RemainingLeaveDays)
	return stats, err
}
