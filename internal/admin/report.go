package admin

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheet   = "Chat History"
	maxReportRows = 5000
)

var chatReportHeader = []string{"Timestamp", "Session", "Domain", "Sender", "Intent", "Message"}

var chatReportWidths = []float64{22, 38, 14, 10, 14, 80}

// ReportFilter narrows a chat export. Zero values match everything.
type ReportFilter struct {
	Domain string
	Since  time.Time
}

// ChatReport renders stored chat messages, oldest first, as an xlsx workbook.
func (s *Service) ChatReport(ctx context.Context, f ReportFilter) ([]byte, error) {
	q := repository.Query{SortBy: "timestamp", Limit: maxReportRows}
	if f.Domain != "" {
		q.Filters = append(q.Filters, repository.Where("domain", repository.Eq, f.Domain))
	}
	if !f.Since.IsZero() {
		q.Filters = append(q.Filters, repository.Where("timestamp", repository.Gte, f.Since.UTC()))
	}
	msgs, err := s.chats.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	return renderChatReport(msgs)
}

func renderChatReport(msgs []models.ChatMessage) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for col, h := range chatReportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("header %s: %w", cell, err)
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(reportSheet, name, name, chatReportWidths[col]); err != nil {
			return nil, fmt.Errorf("column width %s: %w", name, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(chatReportHeader), 1)
	if err := f.SetCellStyle(reportSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, m := range msgs {
		row := []interface{}{
			m.Timestamp.UTC().Format(time.RFC3339),
			m.SessionID,
			m.Domain,
			m.Sender,
			m.Intent,
			m.Text,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
