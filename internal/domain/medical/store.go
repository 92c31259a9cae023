package medical

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

const leaveColumns = `
    id, employee_id, type, start_date, end_date, total_days, diagnosis,
    COALESCE(reference_number, ''), COALESCE(institution, ''),
    COALESCE(document_url, ''), office, recorded_by, created_at`

func (s *Store) Insert(ctx context.Context, ml MedicalLeave) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO medical_leaves (employee_id, type, start_date, end_date, total_days, diagnosis,
      reference_number, institution, document_url, office, recorded_by)
    VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),NULLIF($8,''),NULLIF($9,''),$10,$11)
    RETURNING id
  `, ml.EmployeeID, ml.Type, ml.StartDate, ml.EndDate, ml.TotalDays, ml.Diagnosis,
		ml.ReferenceNumber, ml.Institution, ml.DocumentURL, ml.Office, ml.RecordedBy).Scan(&id)
	return id, err
}

// EmployeeOffice resolves the office an active employee belongs to.
func (s *Store) EmployeeOffice(ctx context.Context, employeeID string) (string, error) {
	var office string
	err := s.DB.QueryRow(ctx, "SELECT office FROM employees WHERE id = $1 AND active", employeeID).Scan(&office)
	return office, err
}

func (s *Store) Get(ctx context.Context, id string) (MedicalLeave, error) {
	var ml MedicalLeave
	err := s.DB.QueryRow(ctx, `
    SELECT `+leaveColumns+`
    FROM medical_leaves
    WHERE id = $1
  `, id).Scan(&ml.ID, &ml.EmployeeID, &ml.Type, &ml.StartDate, &ml.EndDate, &ml.TotalDays,
		&ml.Diagnosis, &ml.ReferenceNumber, &ml.Institution, &ml.DocumentURL, &ml.Office,
		&ml.RecordedBy, &ml.CreatedAt)
	return ml, err
}

type ListFilter struct {
	EmployeeID string
	Type       string
	Office     string
	Year       int
	Limit      int
	Offset     int
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]MedicalLeave, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Office != "" {
		args = append(args, filter.Office)
		where += fmt.Sprintf(" AND office = $%d", len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM start_date) = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM medical_leaves"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM medical_leaves%s ORDER BY start_date DESC LIMIT $%d OFFSET $%d",
		leaveColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []MedicalLeave
	for rows.Next() {
		var ml MedicalLeave
		if err := rows.Scan(&ml.ID, &ml.EmployeeID, &ml.Type, &ml.StartDate, &ml.EndDate, &ml.TotalDays,
			&ml.Diagnosis, &ml.ReferenceNumber, &ml.Institution, &ml.DocumentURL, &ml.Office,
			&ml.RecordedBy, &ml.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, ml)
	}
	return out, total, rows.Err()
}
