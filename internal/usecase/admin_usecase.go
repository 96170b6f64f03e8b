package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

type adminUsecase struct {
	repo domain.AdminRepository
	now  func() time.Time
}

func NewAdminUsecase(repo domain.AdminRepository) domain.AdminUsecase {
	return &adminUsecase{repo: repo, now: time.Now}
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]domain.AdminUser, error) {
	users, err := u.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (u *adminUsecase) ListInternships(ctx context.Context) ([]domain.AdminInternship, error) {
	items, err := u.repo.ListInternships(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (u *adminUsecase) ListApplications(ctx context.Context) ([]domain.AdminApplication, error) {
	apps, err := u.repo.ListApplications(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats, err := u.repo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

var exportHeaders = []string{"ID", "INTERNSHIP", "COMPANY", "STUDENT", "STATUS", "APPLIED AT"}

func exportRow(a domain.AdminApplication) []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.InternshipTitle,
		a.CompanyName,
		a.StudentName,
		a.Status,
		a.AppliedAt.UTC().Format(time.RFC3339),
	}
}

// ExportApplications renders every application as xlsx (default) or csv.
func (u *adminUsecase) ExportApplications(ctx context.Context, format string) (*domain.ExportFile, error) {
	apps, err := u.repo.ListApplications(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	stamp := u.now().Format("20060102_150405")
	switch format {
	case domain.ExportFormatCSV:
		data, err := exportCSV(apps)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.ExportFile{
			Filename:    fmt.Sprintf("applications_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case domain.ExportFormatXLSX, "":
		data, err := exportExcel(apps)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.ExportFile{
			Filename:    fmt.Sprintf("applications_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, apperror.Validation("unsupported export format: " + format)
	}
}

func exportExcel(apps []domain.AdminApplication) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Applications"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for rowIdx, a := range apps {
		for colIdx, v := range exportRow(a) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	for i := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(apps []domain.AdminApplication) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, a := range apps {
		if err := w.Write(exportRow(a)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
