package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderHeaders = []string{
	"ID", "UserID", "FullName", "Phone", "DeliveryAddress", "Products", "TotalPrice", "Status", "CreatedAt",
}

// 注文1件を1行にしてxlsxで書き出す
func WriteOrdersXLSX(w io.Writer, orders []model.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range orderHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()

		row.AddCell().SetInt64(o.ID)
		row.AddCell().SetInt64(o.UserID)
		row.AddCell().SetString(o.FullName)
		row.AddCell().SetString(o.Phone)
		row.AddCell().SetString(o.DeliveryAddress)
		row.AddCell().SetString(summarizeProducts(o.Products))
		row.AddCell().SetString(o.TotalPrice.StringFixed(2))
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}

// "Beads x2 @ 10.00; Kente x1 @ 45.50"
func summarizeProducts(products []model.OrderProduct) string {
	parts := make([]string, 0, len(products))
	for _, p := range products {
		parts = append(parts, fmt.Sprintf("%s x%d @ %s", p.Name, p.Quantity, p.Price.StringFixed(2)))
	}
	return strings.Join(parts, "; ")
}
