// Package export renders click listings as spreadsheets.
package export

import (
	"DealScout-Backend/internal/analytics"
	"DealScout-Backend/internal/domain"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	ClicksSheet  = "Clicks"
	SummarySheet = "Summary"
)

var clickHeader = []interface{}{
	"id", "clicked_at", "platform", "product_id", "product_title", "affiliate_link",
	"converted", "converted_at", "ip_address", "device_type", "browser", "os",
	"referrer", "notes",
}

// ClicksXLSX renders the clicks, newest first as given, plus a summary sheet.
func ClicksXLSX(clicks []*domain.ClickEvent, summary analytics.Summary) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	xl.SetSheetName(xl.GetSheetName(0), ClicksSheet)
	if err := xl.SetSheetRow(ClicksSheet, "A1", &clickHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, c := range clicks {
		row := []interface{}{
			c.ID.String(),
			c.ClickedAt.UTC().Format(time.RFC3339),
			string(c.Platform),
			deref(c.ProductID),
			c.ProductTitle,
			deref(c.AffiliateLink),
			c.Converted,
			formatTime(c.ConvertedAt),
			deref(c.IPAddress),
			deref(c.DeviceType),
			deref(c.Browser),
			deref(c.OS),
			deref(c.Referrer),
			deref(c.Notes),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := xl.SetSheetRow(ClicksSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := xl.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"platform", "clicks", "conversions", "conversion_rate"},
	}
	for _, ps := range summary.ByPlatform {
		rows = append(rows, []interface{}{string(ps.Platform), ps.Clicks, ps.Conversions, ps.ConversionRate})
	}
	rows = append(rows, []interface{}{"total", summary.TotalClicks, summary.TotalConversions, summary.ConversionRate})
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := xl.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the attachment name for an export generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("click_events_%s.xlsx", t.UTC().Format("20060102_150405"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
