// Package reports renders ticket data as spreadsheets.
package reports

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"mechanic_shop/internal/models"
)

const (
	TicketSheet     = "Service Tickets"
	DateLayout      = "2006-01-02"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ticketHeaders = []string{
	"Ticket ID", "VIN", "Service Date", "Description", "Customer ID",
	"Mechanic IDs", "Inventory", "Unit Price", "Quantity", "Line Total",
}

// TicketWorkbook writes one row per inventory line. A ticket without lines
// still gets one row with the inventory columns left empty. tickets must have
// mechanics and lines loaded.
func TicketWorkbook(tickets []models.ServiceTicket) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TicketSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, toCells(ticketHeaders)); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(TicketSheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	row := 2
	for _, t := range tickets {
		base := []interface{}{
			t.ID,
			t.VIN,
			time.Time(t.ServiceDate).Format(DateLayout),
			t.ServiceDesc,
			t.CustomerID,
			joinIDs(t.MechanicIDs()),
		}
		if len(t.ServiceInventory) == 0 {
			if err := writeRow(f, row, base); err != nil {
				return nil, err
			}
			row++
			continue
		}
		for _, line := range t.ServiceInventory {
			cells := append(append([]interface{}{}, base...),
				line.Inventory.Name,
				line.Inventory.Price,
				line.Quantity,
				line.Inventory.Price*float64(line.Quantity),
			)
			if err := writeRow(f, row, cells); err != nil {
				return nil, err
			}
			row++
		}
	}

	last, err := excelize.ColumnNumberToName(len(ticketHeaders))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}
	if err := f.SetColWidth(TicketSheet, "A", last, 15); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(TicketSheet, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}

func toCells(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
