package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

type Result struct {
	FilePath        string `json:"filePath"`
	AttendanceRows  int    `json:"attendanceRows"`
	LeaveRows       int    `json:"leaveRows"`
	MedicalRows     int    `json:"medicalRows"`
	GeneratedAt     string `json:"generatedAt"`
	NothingToExport bool   `json:"nothingToExport"`
}

type Status struct {
	PendingAttendance int    `json:"pendingAttendance"`
	PendingLeave      int    `json:"pendingLeave"`
	PendingMedical    int    `json:"pendingMedical"`
	LastExportFile    string `json:"lastExportFile,omitempty"`
}

type Service struct {
	Store     *Store
	ExportDir string
}

func NewService(store *Store, exportDir string) *Service {
	return &Service{Store: store, ExportDir: exportDir}
}

// Run backs up every row not yet exported into a timestamped workbook
// and flags the rows as synced. Selection and flagging share one
// transaction, so a failed workbook write leaves everything pending
// for the next run.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var result Result
	err := pgx.BeginFunc(ctx, s.Store.DB, func(tx pgx.Tx) error {
		attendance, err := s.Store.UnsyncedAttendance(ctx, tx)
		if err != nil {
			return err
		}
		leave, err := s.Store.UnsyncedLeave(ctx, tx)
		if err != nil {
			return err
		}
		medical, err := s.Store.UnsyncedMedical(ctx, tx)
		if err != nil {
			return err
		}

		result.AttendanceRows = len(attendance)
		result.LeaveRows = len(leave)
		result.MedicalRows = len(medical)
		result.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

		if len(attendance)+len(leave)+len(medical) == 0 {
			result.NothingToExport = true
			return nil
		}

		path, err := s.writeWorkbook(attendance, leave, medical)
		if err != nil {
			return err
		}
		result.FilePath = path

		if err := s.Store.MarkSynced(ctx, tx, "attendance_records", attendanceIDs(attendance)); err != nil {
			return err
		}
		if err := s.Store.MarkSynced(ctx, tx, "leave_requests", leaveIDs(leave)); err != nil {
			return err
		}
		return s.Store.MarkSynced(ctx, tx, "medical_leaves", medicalIDs(medical))
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (s *Service) Status(ctx context.Context) (Status, error) {
	var status Status
	var err error
	status.PendingAttendance, status.PendingLeave, status.PendingMedical, err = s.Store.PendingCounts(ctx)
	if err != nil {
		return Status{}, err
	}
	status.LastExportFile = s.latestWorkbook()
	return status, nil
}

func (s *Service) writeWorkbook(attendance []AttendanceRow, leave []LeaveRow, medical []MedicalRow) (string, error) {
	if err := os.MkdirAll(s.ExportDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.ExportDir, fmt.Sprintf("backup_%s.xlsx", time.Now().UTC().Format("20060102_150405")))

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Attendance")
	writeHeader(f, "Attendance", []string{"ID", "Employee", "Date", "Status", "Check In", "Saturday", "Office", "Recorded By", "Note"})
	for i, r := range attendance {
		checkIn := ""
		if r.CheckIn != nil {
			checkIn = *r.CheckIn
		}
		writeRow(f, "Attendance", i+2, []any{r.ID, r.Employee, r.Date.Format(dateLayout), r.Status, checkIn, r.IsSaturday, r.Office, r.RecordedBy, r.Note})
	}

	if _, err := f.NewSheet("LeaveRequests"); err != nil {
		return "", err
	}
	writeHeader(f, "LeaveRequests", []string{"ID", "Employee", "Start", "End", "Days", "Reason", "Status", "Requested By", "Approved By", "Comment"})
	for i, r := range leave {
		writeRow(f, "LeaveRequests", i+2, []any{r.ID, r.Employee, r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
			r.RequestedDays, r.Reason, r.Status, r.RequestedBy, deref(r.ApprovedBy), deref(r.Comment)})
	}

	if _, err := f.NewSheet("MedicalLeaves"); err != nil {
		return "", err
	}
	writeHeader(f, "MedicalLeaves", []string{"ID", "Employee", "Type", "Start", "End", "Days", "Diagnosis", "Reference", "Office", "Recorded By"})
	for i, r := range medical {
		writeRow(f, "MedicalLeaves", i+2, []any{r.ID, r.Employee, r.Type, r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
			r.TotalDays, r.Diagnosis, deref(r.Reference), r.Office, r.RecordedBy})
	}

	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) latestWorkbook() string {
	entries, err := os.ReadDir(s.ExportDir)
	if err != nil {
		return ""
	}
	latest := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".xlsx" {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return ""
	}
	return filepath.Join(s.ExportDir, latest)
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, value)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func attendanceIDs(rows []AttendanceRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func leaveIDs(rows []LeaveRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func medicalIDs(rows []MedicalRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}
