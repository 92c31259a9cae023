package bonus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"hrops/internal/domain/attendance"
	"hrops/internal/platform/cache"
)

var (
	ErrInvalidPeriod = errors.New("invalid bonus period")
	ErrInvalidConfig = errors.New("invalid bonus configuration")
)

type Service struct {
	Store      *Store
	Attendance *attendance.Store
	Cache      *cache.Cache
	ReportDir  string
}

func NewService(store *Store, attendanceStore *attendance.Store, c *cache.Cache, reportDir string) *Service {
	return &Service{Store: store, Attendance: attendanceStore, Cache: c, ReportDir: reportDir}
}

func (s *Service) GetConfig(ctx context.Context) (Config, error) {
	return s.Store.GetConfig(ctx)
}

func (s *Service) Configure(ctx context.Context, cfg Config) error {
	if cfg.BaseAmount.IsNegative() || cfg.LatePenalty.IsNegative() || cfg.AbsencePenalty.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidConfig)
	}
	if cfg.MinimumPresenceDays < 0 || cfg.MinimumPresenceDays > 31 {
		return fmt.Errorf("%w: minimum presence days must be between 0 and 31", ErrInvalidConfig)
	}
	if err := s.Store.UpdateConfig(ctx, cfg); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, "stats:")
	return nil
}

type PeriodResult struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Office  string          `json:"office,omitempty"`
	Records []Record        `json:"records"`
	Total   decimal.Decimal `json:"total"`
}

// ComputePeriod recomputes every active employee's bonus for the given
// month from their attendance counts and upserts the results. Running
// it twice with the same attendance and configuration yields the same
// amounts.
func (s *Service) ComputePeriod(ctx context.Context, year, month int, office, computedBy string) (PeriodResult, error) {
	if month < 1 || month > 12 || year < 2000 {
		return PeriodResult{}, ErrInvalidPeriod
	}

	cfg, err := s.Store.GetConfig(ctx)
	if err != nil {
		return PeriodResult{}, err
	}

	counts, err := s.Attendance.MonthlyCounts(ctx, year, month, office)
	if err != nil {
		return PeriodResult{}, err
	}

	result := PeriodResult{Year: year, Month: month, Office: office, Total: decimal.Zero}
	for _, c := range counts {
		rec := Record{
			EmployeeID:  c.EmployeeID,
			FullName:    c.FullName,
			Office:      c.Office,
			Year:        year,
			Month:       month,
			WorkedDays:  c.Worked,
			PresentDays: c.Present,
			LateDays:    c.Late,
			AbsentDays:  c.Absent,
			Amount:      Compute(c.Present, c.Late, c.Absent, cfg),
			ComputedBy:  computedBy,
		}
		id, err := s.Store.UpsertRecord(ctx, rec)
		if err != nil {
			return PeriodResult{}, fmt.Errorf("bonus for employee %s: %w", c.EmployeeID, err)
		}
		rec.ID = id
		rec.ComputedAt = time.Now().UTC()
		result.Records = append(result.Records, rec)
		result.Total = result.Total.Add(rec.Amount)
	}

	s.Cache.Invalidate(ctx, "stats:")
	return result, nil
}

func (s *Service) ListRecords(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	return s.Store.ListRecords(ctx, filter)
}

// GeneratePeriodReportPDF renders the stored bonus rows of one period
// into a PDF under ReportDir and returns the file path.
func (s *Service) GeneratePeriodReportPDF(ctx context.Context, year, month int, office string) (string, error) {
	records, _, err := s.Store.ListRecords(ctx, ListFilter{Year: year, Month: month, Office: office, Limit: 1000})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.ReportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.ReportDir, fmt.Sprintf("bonus_%d_%02d.pdf", year, month))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Bonus Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %d-%02d", year, month))
	pdf.Ln(7)
	if office != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Office: %s", office))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(70, 7, "Employee")
	pdf.Cell(25, 7, "Present")
	pdf.Cell(25, 7, "Late")
	pdf.Cell(25, 7, "Absent")
	pdf.Cell(30, 7, "Amount")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	total := decimal.Zero
	for _, rec := range records {
		pdf.Cell(70, 6, rec.FullName)
		pdf.Cell(25, 6, fmt.Sprintf("%d", rec.PresentDays))
		pdf.Cell(25, 6, fmt.Sprintf("%d", rec.LateDays))
		pdf.Cell(25, 6, fmt.Sprintf("%d", rec.AbsentDays))
		pdf.Cell(30, 6, rec.Amount.StringFixed(2))
		pdf.Ln(6)
		total = total.Add(rec.Amount)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(145, 7, "Total")
	pdf.Cell(30, 7, total.StringFixed(2))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
