// Package export serializes report and log listings as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/parse"
)

// Format is an output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv, xlsx and excel. Empty means csv.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", apperr.NewValidationError("format", fmt.Sprintf("unsupported export format %q", raw))
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Table is a titled grid ready to be written in any format.
type Table struct {
	// Sheet names the worksheet in XLSX output.
	Sheet string
	// FilePrefix is the start of the suggested download name.
	FilePrefix string
	Header     []string
	Rows       [][]string
}

// FileName suggests a download name stamped with at.
func (t Table) FileName(f Format, at time.Time) string {
	return fmt.Sprintf("%s_%d.%s", t.FilePrefix, at.UnixMilli(), f)
}

var errNothingToExport = apperr.NewValidationError("", "nothing to export")

// ActiveReports tabulates unresolved reports with their priority.
func ActiveReports(reports []model.ProblemReport, loc *time.Location) (Table, error) {
	t := Table{
		Sheet:      "Reportes",
		FilePrefix: "reportes",
		Header:     []string{"Habitación", "Descripción", "Empleado", "Fecha", "Prioridad"},
	}
	for _, r := range reports {
		if r.Resolved {
			continue
		}
		reportedAt := r.ReportedAt
		t.Rows = append(t.Rows, []string{
			r.RoomNumber,
			r.Description,
			parse.Deref(r.EmployeeName, parse.Placeholder),
			parse.FormatTimestamp(&reportedAt, loc),
			string(parse.ClassifyPriority(r.Description)),
		})
	}
	if len(t.Rows) == 0 {
		return Table{}, errNothingToExport
	}
	return t, nil
}

// MaintenanceLogs tabulates the resolution archive.
func MaintenanceLogs(logs []model.MaintenanceLog, loc *time.Location) (Table, error) {
	if len(logs) == 0 {
		return Table{}, errNothingToExport
	}
	t := Table{
		Sheet:      "Historial",
		FilePrefix: "historial_mantenimientos",
		Header:     []string{"Habitación", "Descripción", "ResueltoPor", "Comentario", "Fecha"},
	}
	for _, l := range logs {
		resolvedBy := l.ResolvedBy
		if resolvedBy == "" {
			resolvedBy = parse.Placeholder
		}
		resolvedAt := l.ResolvedAt
		t.Rows = append(t.Rows, []string{
			l.RoomNumber,
			l.Description,
			resolvedBy,
			l.Comment,
			parse.FormatTimestamp(&resolvedAt, loc),
		})
	}
	return t, nil
}

// CleaningLogs tabulates cleaning sessions.
func CleaningLogs(logs []model.CleaningLog, loc *time.Location) (Table, error) {
	if len(logs) == 0 {
		return Table{}, errNothingToExport
	}
	t := Table{
		Sheet:      "Limpiezas",
		FilePrefix: "limpiezas",
		Header:     []string{"Habitación", "Empleado", "Inicio", "Fin", "Duración"},
	}
	for _, l := range logs {
		startedAt, endedAt := l.StartedAt, l.EndedAt
		t.Rows = append(t.Rows, []string{
			l.RoomNumber,
			parse.Deref(l.EmployeeName, parse.Placeholder),
			parse.FormatTimestamp(&startedAt, loc),
			parse.FormatTimestamp(&endedAt, loc),
			strconv.Itoa(l.DurationMinutes) + " min",
		})
	}
	return t, nil
}

// Write serializes t in format f.
func Write(w io.Writer, f Format, t Table) error {
	if f == FormatXLSX {
		return WriteXLSX(w, t)
	}
	return WriteCSV(w, t)
}

// WriteCSV writes the header and rows as CSV.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := append([][]string{t.Header}, t.Rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
