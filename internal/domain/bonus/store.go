package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetConfig(ctx context.Context) (Config, error) {
	var cfg Config
	var base, late, absence string
	var updatedBy *string
	err := s.DB.QueryRow(ctx, `
    SELECT base_amount::text, late_penalty::text, absence_penalty::text,
           minimum_presence_days, updated_by, updated_at
    FROM bonus_config
    WHERE id = 1
  `).Scan(&base, &late, &absence, &cfg.MinimumPresenceDays, &updatedBy, &cfg.UpdatedAt)
	if err != nil {
		return Config{}, err
	}
	if cfg.BaseAmount, err = decimal.NewFromString(base); err != nil {
		return Config{}, err
	}
	if cfg.LatePenalty, err = decimal.NewFromString(late); err != nil {
		return Config{}, err
	}
	if cfg.AbsencePenalty, err = decimal.NewFromString(absence); err != nil {
		return Config{}, err
	}
	if updatedBy != nil {
		cfg.UpdatedBy = *updatedBy
	}
	return cfg, nil
}

func (s *Store) UpdateConfig(ctx context.Context, cfg Config) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE bonus_config
    SET base_amount = $1, late_penalty = $2, absence_penalty = $3,
        minimum_presence_days = $4, updated_by = $5, updated_at = now()
    WHERE id = 1
  `, cfg.BaseAmount.StringFixed(2), cfg.LatePenalty.StringFixed(2),
		cfg.AbsencePenalty.StringFixed(2), cfg.MinimumPresenceDays, cfg.UpdatedBy)
	return err
}

// UpsertRecord writes one period result per (employee, year, month);
// recomputation replaces the earlier counts and amount.
func (s *Store) UpsertRecord(ctx context.Context, rec Record) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO bonus_records (employee_id, year, month, worked_days, present_days, late_days, absent_days, amount, computed_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    ON CONFLICT (employee_id, year, month) DO UPDATE SET
      worked_days = EXCLUDED.worked_days,
      present_days = EXCLUDED.present_days,
      late_days = EXCLUDED.late_days,
      absent_days = EXCLUDED.absent_days,
      amount = EXCLUDED.amount,
      computed_by = EXCLUDED.computed_by,
      computed_at = now()
    RETURNING id
  `, rec.EmployeeID, rec.Year, rec.Month, rec.WorkedDays, rec.PresentDays,
		rec.LateDays, rec.AbsentDays, rec.Amount.StringFixed(2), rec.ComputedBy).Scan(&id)
	return id, err
}

type ListFilter struct {
	EmployeeID string
	Year       int
	Month      int
	Office     string
	Limit      int
	Offset     int
}

func (s *Store) ListRecords(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND b.employee_id = $%d", len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(" AND b.year = $%d", len(args))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		where += fmt.Sprintf(" AND b.month = $%d", len(args))
	}
	if filter.Office != "" {
		args = append(args, filter.Office)
		where += fmt.Sprintf(" AND e.office = $%d", len(args))
	}

	base := " FROM bonus_records b JOIN employees e ON b.employee_id = e.id" + where

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1)"+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
    SELECT b.id, b.employee_id, e.full_name, e.office, b.year, b.month,
           b.worked_days, b.present_days, b.late_days, b.absent_days,
           b.amount::text, b.computed_by, b.computed_at%s
    ORDER BY b.year DESC, b.month DESC, e.full_name
    LIMIT $%d OFFSET $%d`, base, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var amount string
		var computedAt time.Time
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.FullName, &rec.Office, &rec.Year, &rec.Month,
			&rec.WorkedDays, &rec.PresentDays, &rec.LateDays, &rec.AbsentDays,
			&amount, &rec.ComputedBy, &computedAt); err != nil {
			return nil, 0, err
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, 0, err
		}
		rec.ComputedAt = computedAt
		out = append(out, rec)
	}
	return out, total, rows.Err()
}
