package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	intconfig "fjelldrift/internal/config"
	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/utils"
)

// ReportService renders admin exports: a feedback summary as PDF and
// the booking ledger as a spreadsheet.
type ReportService struct {
	FeedbackRepo repositories.FeedbackRepo
	BookingRepo  repositories.PlowBookingRepo
	SandingRepo  repositories.SandingRepo
	DB           *sql.DB
	RequestID    string
}

func (s ReportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReportService) feedback() repositories.FeedbackRepo {
	if s.FeedbackRepo.DB != nil {
		return s.FeedbackRepo
	}
	return repositories.FeedbackRepo{DB: s.db()}
}

func (s ReportService) bookings() repositories.PlowBookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.PlowBookingRepo{DB: s.db()}
}

func (s ReportService) sanding() repositories.SandingRepo {
	if s.SandingRepo.DB != nil {
		return s.SandingRepo
	}
	return repositories.SandingRepo{DB: s.db()}
}

// FeedbackReportPDF summarizes feedback volume in [start, end].
func (s ReportService) FeedbackReportPDF(start, end string) ([]byte, string, error) {
	if start == "" || end == "" {
		return nil, "", domain.ValidationError{Field: "period", Msg: "start and end are required"}
	}
	repo := s.feedback()

	byType, err := repo.CountsBy("type", start, end)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	byStatus, err := repo.CountsBy("status", start, end)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	entries, err := repo.List(repositories.FeedbackQuery{Start: start, End: end, IncludeHidden: true, Limit: 50})
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reports", "feedback_pdf", fmt.Sprintf("period=%s..%s", start, end))
	return buildFeedbackPDF(start, end, byType, byStatus, entries)
}

func buildFeedbackPDF(start, end string, byType, byStatus map[string]int, entries []models.Feedback) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Feedbackrapport", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FEEDBACKRAPPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Periode: %s til %s", start, end))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Generert: "+utils.FormatDateTime(utils.Now()))
	pdf.Ln(12)

	writeCountTable := func(title string, counts map[string]int) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(90, 6, "Kategori", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, "Antall", "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pdf.CellFormat(90, 6, k, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", counts[k]), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}
	writeCountTable("Per type", byType)
	writeCountTable("Per status", byStatus)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Siste innmeldinger")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, f := range entries {
		pdf.MultiCell(0, 5, fmt.Sprintf("%s  [%s/%s]  %s", f.Datetime, f.Type, f.Status, f.Comment), "", "", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	filename := fmt.Sprintf("feedbackrapport_%s_%s.pdf", start, end)
	return buf.Bytes(), filename, nil
}

// BookingsXLSX exports every plow booking plus the sanding ledger.
func (s ReportService) BookingsXLSX(now time.Time) ([]byte, string, error) {
	bookings, err := s.bookings().List()
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	orders, err := s.sanding().List()
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reports", "bookings_xlsx", fmt.Sprintf("bookings=%d sanding=%d", len(bookings), len(orders)))
	return buildBookingsXLSX(bookings, orders, now)
}

func buildBookingsXLSX(bookings []models.PlowBooking, orders []models.SandingOrder, now time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	plowSheet := "tunbroyting"
	sandSheet := "stroing"
	f.SetSheetName("Sheet1", plowSheet)
	f.NewSheet(sandSheet)

	headers := []string{"Id", "Hytte", "Ankomst dato", "Ankomst tid", "Avreise dato", "Avreise tid", "Abonnement"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(plowSheet, cell, h)
	}
	for i, b := range bookings {
		row := i + 2
		_ = f.SetCellValue(plowSheet, fmt.Sprintf("A%d", row), b.ID)
		_ = f.SetCellValue(plowSheet, fmt.Sprintf("B%d", row), b.Cabin)
		_ = f.SetCellValue(plowSheet, fmt.Sprintf("C%d", row), b.ArrivalDate)
		_ = f.SetCellValue(plowSheet, fmt.Sprintf("D%d", row), b.ArrivalTime)
		_ = f.SetCellValue(plowSheet, fmt.Sprintf("E%d", row), b.DepartureDate)
		_ = f.SetCellValue(plowSheet, fmt.Sprintf("F%d", row), b.DepartureTime)
		_ = f.SetCellValue(plowSheet, fmt.Sprintf("G%d", row), b.SubscriptionType)
	}

	sandHeaders := []string{"Id", "Hytte", "Bestilt", "Onsket dato", "Status", "Utfort av", "Utfort dato", "Fakturert"}
	for i, h := range sandHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sandSheet, cell, h)
	}
	for i, o := range orders {
		row := i + 2
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("A%d", row), o.ID)
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("B%d", row), o.Cabin)
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("C%d", row), o.OrderedAt)
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("D%d", row), o.WishDate)
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("E%d", row), o.Status)
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("F%d", row), o.CompletedBy)
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("G%d", row), o.CompletedAt)
		_ = f.SetCellValue(sandSheet, fmt.Sprintf("H%d", row), o.Invoiced)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	filename := "bestillinger_" + utils.FormatDate(now.In(utils.ReferenceLocation())) + ".xlsx"
	return buf.Bytes(), filename, nil
}
