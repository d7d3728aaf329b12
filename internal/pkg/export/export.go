// Package export renders daily time records as XLSX or PDF documents.
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"

	sheetName = "DTR"
)

var dtrHeaders = []string{"Date", "Day", "Intern", "Student ID", "Clock In", "Clock Out", "Hours", "Status", "Late", "Undertime", "Overtime", "Location"}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func dtrRow(r report.DTRRow) []string {
	return []string{
		r.Date,
		r.Day,
		r.InternName,
		r.StudentID,
		deref(r.ClockIn),
		deref(r.ClockOut),
		strconv.FormatFloat(r.TotalHours, 'f', 2, 64),
		r.Status,
		yesNo(r.IsLate),
		yesNo(r.IsUndertime),
		yesNo(r.IsOvertime),
		r.Location,
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// DTRToXLSX renders the report as a single-sheet workbook.
func DTRToXLSX(dtr report.DTRReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(dtrHeaders))
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Daily Time Record %s to %s", dtr.StartDate, dtr.EndDate))
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	for i, h := range dtrHeaders {
		f.SetCellValue(sheetName, cell(i+1, 3), h)
	}
	f.SetCellStyle(sheetName, "A3", lastCol+"3", headerStyle)

	f.SetColWidth(sheetName, "A", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 24)
	f.SetColWidth(sheetName, "D", "K", 12)
	f.SetColWidth(sheetName, "L", "L", 40)

	row := 4
	for _, r := range dtr.Data {
		for i, v := range dtrRow(r) {
			if i == 6 {
				f.SetCellValue(sheetName, cell(i+1, row), r.TotalHours)
				continue
			}
			f.SetCellValue(sheetName, cell(i+1, row), v)
		}
		row++
	}

	f.SetCellValue(sheetName, cell(6, row+1), "Total")
	f.SetCellValue(sheetName, cell(7, row+1), dtr.TotalHours)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var pdfWidths = []float64{20, 20, 40, 22, 18, 18, 14, 20, 11, 17, 16, 61}

// DTRToPDF renders the report as a landscape A4 table.
func DTRToPDF(dtr report.DTRReport, generatedAt string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Daily Time Record", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Daily Time Record")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s   Records: %d   Total hours: %.2f",
		dtr.StartDate, dtr.EndDate, dtr.TotalRecords, dtr.TotalHours))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(31, 78, 120)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range dtrHeaders {
		pdf.CellFormat(pdfWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range dtr.Data {
		for i, v := range dtrRow(r) {
			if i == len(dtrHeaders)-1 && len(v) > 45 {
				v = v[:42] + "..."
			}
			pdf.CellFormat(pdfWidths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 6, "Generated at "+generatedAt)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
