package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sowin-pos/internal/domain"
)

type ProductWriter interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads a product sheet and registers every new product with
// the backend. Rows whose barcode already exists are skipped.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // spreadsheets often drop trailing empty cells
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, productRepo: repo}
}

type Result struct {
	Imported int
	Skipped  int
}

// Run parses the sheet and creates products row by row. It stops at the
// first invalid row or backend error; rows before it stay imported.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"nombre_producto", "id_categoria", "precio_compra", "precio_venta"} {
		if _, ok := index[required]; !ok {
			return res, fmt.Errorf("missing column %q", required)
		}
	}

	existing, err := i.productRepo.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list products: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		if p.Code != "" {
			known[p.Code] = struct{}{}
		}
	}

	line := 1
	for {
		record, err := i.reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", line, err)
		}

		p, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", line, err)
		}
		if p == nil {
			continue
		}
		if p.Code != "" {
			if _, dup := known[p.Code]; dup {
				res.Skipped++
				continue
			}
		}
		if _, err := i.productRepo.Create(ctx, *p); err != nil {
			return res, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		if p.Code != "" {
			known[p.Code] = struct{}{}
		}
		res.Imported++
	}
	return res, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return idx
}

// parseRow returns nil for blank rows.
func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	code := pick(record, index, "codigo_barras")
	name := pick(record, index, "nombre_producto")
	if code == "" && name == "" {
		return nil, nil
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing nombre_producto", domain.ErrValidation)
	}

	p := &domain.Product{
		Code:      code,
		Name:      name,
		Reference: pick(record, index, "referencia"),
		Notes:     pick(record, index, "notas"),
	}
	var err error
	if p.CategoryID, err = parseInt64(pick(record, index, "id_categoria"), "id_categoria"); err != nil {
		return nil, err
	}
	if p.PurchasePrice, err = parsePrice(pick(record, index, "precio_compra"), "precio_compra"); err != nil {
		return nil, err
	}
	if p.SalePrice, err = parsePrice(pick(record, index, "precio_venta"), "precio_venta"); err != nil {
		return nil, err
	}
	if p.Stock, err = parseOptionalInt(pick(record, index, "stock_actual"), "stock_actual"); err != nil {
		return nil, err
	}
	if p.StockMin, err = parseOptionalInt(pick(record, index, "stock_minimo"), "stock_minimo"); err != nil {
		return nil, err
	}
	if p.StockMax, err = parseOptionalInt(pick(record, index, "stock_maximo"), "stock_maximo"); err != nil {
		return nil, err
	}
	if p.StockMax > 0 && p.StockMin > p.StockMax {
		return nil, fmt.Errorf("%w: stock_minimo above stock_maximo", domain.ErrValidation)
	}
	return p, nil
}

func parseInt64(v, field string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, field, v)
	}
	return n, nil
}

func parseOptionalInt(v, field string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, field, v)
	}
	return n, nil
}

func parsePrice(v, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, field, v)
	}
	return d, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
