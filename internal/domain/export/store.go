package export

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRow, LeaveRow and MedicalRow are flattened for the backup
// workbook; column order here matches the sheet layout.
type AttendanceRow struct {
	ID         string
	Employee   string
	Date       time.Time
	Status     string
	CheckIn    *string
	IsSaturday bool
	Office     string
	RecordedBy string
	Note       string
}

type LeaveRow struct {
	ID            string
	Employee      string
	StartDate     time.Time
	EndDate       time.Time
	RequestedDays int
	Reason        string
	Status        string
	RequestedBy   string
	ApprovedBy    *string
	Comment       *string
}

type MedicalRow struct {
	ID         string
	Employee   string
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Diagnosis  string
	Reference  *string
	Office     string
	RecordedBy string
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Unsynced rows are selected FOR UPDATE so that two concurrent export
// runs never back up and flag the same rows twice.

func (s *Store) UnsyncedAttendance(ctx context.Context, tx pgx.Tx) ([]AttendanceRow, error) {
	rows, err := tx.Query(ctx, `
    SELECT a.id, e.full_name, a.date, a.status, a.check_in::text, a.is_saturday, a.office, a.recorded_by, a.note
    FROM attendance_records a
    JOIN employees e ON a.employee_id = e.id
    WHERE a.synced = false
    ORDER BY a.date, e.full_name
    FOR UPDATE OF a
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AttendanceRow
	for rows.Next() {
		var r AttendanceRow
		if err := rows.Scan(&r.ID, &r.Employee, &r.Date, &r.Status, &r.CheckIn, &r.IsSaturday, &r.Office, &r.RecordedBy, &r.Note); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UnsyncedLeave(ctx context.Context, tx pgx.Tx) ([]LeaveRow, error) {
	rows, err := tx.Query(ctx, `
    SELECT l.id, e.full_name, l.start_date, l.end_date, l.requested_days, l.reason, l.status,
           l.requested_by, l.approved_by, l.approval_comment
    FROM leave_requests l
    JOIN employees e ON l.employee_id = e.id
    WHERE l.synced = false
    ORDER BY l.created_at
    FOR UPDATE OF l
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaveRow
	for rows.Next() {
		var r LeaveRow
		if err := rows.Scan(&r.ID, &r.Employee, &r.StartDate, &r.EndDate, &r.RequestedDays, &r.Reason, &r.Status,
			&r.RequestedBy, &r.ApprovedBy, &r.Comment); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UnsyncedMedical(ctx context.Context, tx pgx.Tx) ([]MedicalRow, error) {
	rows, err := tx.Query(ctx, `
    SELECT m.id, e.full_name, m.type, m.start_date, m.end_date, m.total_days, m.diagnosis,
           m.reference_number, m.office, m.recorded_by
    FROM medical_leaves m
    JOIN employees e ON m.employee_id = e.id
    WHERE m.synced = false
    ORDER BY m.created_at
    FOR UPDATE OF m
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MedicalRow
	for rows.Next() {
		var r MedicalRow
		if err := rows.Scan(&r.ID, &r.Employee, &r.Type, &r.StartDate, &r.EndDate, &r.TotalDays, &r.Diagnosis,
			&r.Reference, &r.Office, &r.RecordedBy); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) MarkSynced(ctx context.Context, tx pgx.Tx, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, "UPDATE "+table+" SET synced = true WHERE id = ANY($1)", ids)
	return err
}

// PendingCounts reports how many rows of each table still await backup.
func (s *Store) PendingCounts(ctx context.Context) (attendance, leave, medical int, err error) {
	err = s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(1) FROM attendance_records WHERE synced = false),
      (SELECT COUNT(1) FROM leave_requests WHERE synced = false),
      (SELECT COUNT(1) FROM medical_leaves WHERE synced = false)
  `).Scan(&attendance, &leave, &medical)
	return
}
