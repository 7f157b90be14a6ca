// Package export renders order listings as spreadsheets for administrators.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/polkiloo/rype/internal/domain/model"
)

// SheetName is the worksheet that receives the order rows.
const SheetName = "Sheet1"

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const timeLayout = "2006-01-02 15:04"

var orderHeaders = []string{
	"Order ID", "Created At", "Customer", "Email", "Phone", "Items",
	"Total", "Status", "Payment", "Address", "Delivered At",
}

// OrdersWorkbook writes one row per order, newest first as supplied, below a
// bold header row.
func OrdersWorkbook(w io.Writer, orders []model.Order) error {
	f := excelize.NewFile()

	for col, header := range orderHeaders {
		if err := setCell(f, col+1, 1, header); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(orderHeaders), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, order := range orders {
		if err := writeOrderRow(f, i+2, order); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "F", "F", 48); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeOrderRow(f *excelize.File, row int, o model.Order) error {
	delivered := ""
	if o.DeliveredAt != nil {
		delivered = o.DeliveredAt.Format(timeLayout)
	}
	values := []any{
		o.ID,
		o.CreatedAt.Format(timeLayout),
		o.Customer.Name,
		o.Customer.Email,
		o.Customer.Phone,
		describeItems(o.Items),
		o.Total,
		string(o.Status),
		strings.ToUpper(string(o.PaymentMethod)),
		o.Address,
		delivered,
	}
	for col, v := range values {
		if err := setCell(f, col+1, row, v); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

func describeItems(items []model.OrderItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d x %s", item.Quantity, item.Name)
	}
	return strings.Join(parts, ", ")
}

// FileName builds a dated download name for the export.
func FileName(now time.Time) string {
	return "rype-orders-" + now.Format("20060102-1504") + ".xlsx"
}
