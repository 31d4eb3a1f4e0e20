// Package itemimport lee listas de precios (CSV o XLSX) y las convierte en
// artículos de inventario listos para usecase.InventoryUseCase.Import.
package itemimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat extensión distinta de .csv/.xlsx.
var ErrUnsupportedFormat = errors.New("formato de archivo no soportado")

// Alias aceptados por columna (en minúsculas, sin espacios extremos).
var headerAliases = map[string][]string{
	"name":     {"name", "item", "item name", "description", "product"},
	"hsn":      {"hsn", "hsn code", "hsn/sac", "sac"},
	"category": {"category", "group"},
	"rate":     {"rate", "price", "unit price", "mrp"},
	"stock":    {"stock", "qty", "quantity", "opening stock"},
	"unit":     {"unit", "uom"},
	"gst_rate": {"gst", "gst rate", "gst %", "gst_rate", "tax %"},
}

// Parse detecta el formato por la extensión del nombre de archivo.
func Parse(filename string, r io.Reader) ([]dto.CreateInventoryItemRequest, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// ParseCSV acepta UTF-8 (con o sin BOM) o Windows-1252, que es lo que exporta
// Excel en Windows.
func ParseCSV(r io.Reader) ([]dto.CreateInventoryItemRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, domain.NewValidationError("file", "csv mal formado: %v", err)
	}
	return fromRecords(records)
}

// ParseXLSX lee la primera hoja del libro.
func ParseXLSX(r io.Reader) ([]dto.CreateInventoryItemRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "xlsx ilegible: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError("file", "el libro no tiene hojas")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) ([]dto.CreateInventoryItemRequest, error) {
	if len(records) == 0 {
		return nil, domain.NewValidationError("file", "archivo vacío")
	}
	cols := mapHeader(records[0])
	if _, ok := cols["name"]; !ok {
		return nil, domain.NewValidationError("file", "falta la columna de nombre")
	}

	items := make([]dto.CreateInventoryItemRequest, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		get := func(key string) string {
			idx, ok := cols[key]
			if !ok || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if blank(rec) {
			continue
		}
		rate, err := parseDecimal(get("rate"))
		if err != nil {
			return nil, domain.NewValidationError("rate", "fila %d: %v", line, err)
		}
		gst, err := parseDecimal(strings.TrimSuffix(get("gst_rate"), "%"))
		if err != nil {
			return nil, domain.NewValidationError("gst_rate", "fila %d: %v", line, err)
		}
		stock, err := parseStock(get("stock"))
		if err != nil {
			return nil, domain.NewValidationError("stock", "fila %d: %v", line, err)
		}
		items = append(items, dto.CreateInventoryItemRequest{
			Name:     get("name"),
			HSN:      get("hsn"),
			Category: get("category"),
			Rate:     rate,
			Stock:    stock,
			Unit:     get("unit"),
			GSTRate:  gst,
		})
	}
	return items, nil
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(headerAliases))
	for idx, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for key, aliases := range headerAliases {
			if _, taken := cols[key]; taken {
				continue
			}
			for _, a := range aliases {
				if h == a {
					cols[key] = idx
				}
			}
		}
	}
	return cols
}

// parseDecimal admite separadores de miles ("1,250.50") y el prefijo de rupias.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "₹"), "Rs."))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseStock(s string) (int, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	// Excel guarda enteros como "12.0" con frecuencia.
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("stock no entero: %q", s)
	}
	return int(d.IntPart()), nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
