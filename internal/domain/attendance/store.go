package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Upsert writes one record per (employee, date). Re-recording the same
// day replaces the earlier row instead of appending a duplicate, so
// counts feeding quota and bonus arithmetic stay correct.
func (s *Store) Upsert(ctx context.Context, rec Record) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (employee_id, date, status, check_in, is_saturday, office, recorded_by, note)
    VALUES ($1,$2,$3,NULLIF($4,'')::time,$5,$6,$7,$8)
    ON CONFLICT (employee_id, date) DO UPDATE SET
      status = EXCLUDED.status,
      check_in = EXCLUDED.check_in,
      office = EXCLUDED.office,
      recorded_by = EXCLUDED.recorded_by,
      note = EXCLUDED.note,
      synced = false
    RETURNING id
  `, rec.EmployeeID, rec.Date, rec.Status, rec.CheckIn, rec.IsSaturday, rec.Office, rec.RecordedBy, rec.Note).Scan(&id)
	return id, err
}

type ListFilter struct {
	EmployeeID string
	Office     string
	Status     string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Office != "" {
		args = append(args, filter.Office)
		where += fmt.Sprintf(" AND office = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM attendance_records"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
    SELECT id, employee_id, date, status, COALESCE(check_in::text, ''), is_saturday, office, recorded_by, note, created_at
    FROM attendance_records%s
    ORDER BY date DESC, employee_id
    LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.CheckIn,
			&rec.IsSaturday, &rec.Office, &rec.RecordedBy, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

// MonthlyCounts aggregates per-employee status counts for a bonus
// period. Only active employees are included; an office filter narrows
// the set.
type MonthlyCount struct {
	EmployeeID string
	FullName   string
	Office     string
	Worked     int
	Present    int
	Late       int
	Absent     int
}

func (s *Store) MonthlyCounts(ctx context.Context, year, month int, office string) ([]MonthlyCount, error) {
	query := `
    SELECT e.id, e.full_name, e.office,
      COUNT(a.id),
      COUNT(a.id) FILTER (WHERE a.status = 'present'),
      COUNT(a.id) FILTER (WHERE a.status = 'late'),
      COUNT(a.id) FILTER (WHERE a.status = 'absent')
    FROM employees e
    LEFT JOIN attendance_records a
      ON a.employee_id = e.id
      AND EXTRACT(YEAR FROM a.date) = $1
      AND EXTRACT(MONTH FROM a.date) = $2
    WHERE e.active
  `
	args := []any{year, month}
	if office != "" {
		args = append(args, office)
		query += fmt.Sprintf(" AND e.office = $%d", len(args))
	}
	query += " GROUP BY e.id, e.full_name, e.office ORDER BY e.full_name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyCount
	for rows.Next() {
		var c MonthlyCount
		if err := rows.Scan(&c.EmployeeID, &c.FullName, &c.Office, &c.Worked, &c.Present, &c.Late, &c.Absent); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
