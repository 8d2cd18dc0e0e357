package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

// ExportProducts writes every product as an XLSX workbook with one sheet
func (s *CatalogService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.ListAllProducts(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range ExportColumns {
		header.AddCell().SetString(col)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.BrandName)
		row.AddCell().SetString(p.CategoryName)
		price, _ := p.Price.Float64()
		row.AddCell().SetFloatWithFormat(price, "0.00")
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	s.logger.Info("Products exported", zap.Int("count", len(products)))
	return nil
}
