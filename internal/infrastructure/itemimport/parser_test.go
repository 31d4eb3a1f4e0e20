package itemimport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/itemimport"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV_UTF8ConBOM(t *testing.T) {
	in := "\xef\xbb\xbfItem Name,HSN Code,Rate,GST %,Qty,UOM\n" +
		"Hex Bolt M8,7318,\"1,250.50\",18%,12,pcs\n" +
		",,,,,\n" +
		"Washer,7318,₹2,,,\n"

	items, err := itemimport.Parse("lista.CSV", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Hex Bolt M8", items[0].Name)
	assert.Equal(t, "7318", items[0].HSN)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(items[0].Rate))
	assert.True(t, decimal.NewFromInt(18).Equal(items[0].GSTRate))
	assert.Equal(t, 12, items[0].Stock)
	assert.Equal(t, "pcs", items[0].Unit)

	assert.True(t, decimal.NewFromInt(2).Equal(items[1].Rate))
	assert.True(t, items[1].GSTRate.IsZero())
	assert.Equal(t, "", items[1].Unit)
}

func TestParseCSV_Windows1252(t *testing.T) {
	// "Café Filter" con é codificada como 0xE9.
	in := []byte("name,hsn,rate\nCaf\xe9 Filter,8421,99\n")

	items, err := itemimport.ParseCSV(bytes.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Café Filter", items[0].Name)
}

func TestParseXLSX_PrimeraHoja(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Product", "HSN", "Price", "Stock", "GST Rate"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Nut", "7318", 50, 100, 12}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	items, err := itemimport.Parse("precios.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Nut", items[0].Name)
	assert.True(t, decimal.NewFromInt(50).Equal(items[0].Rate))
	assert.Equal(t, 100, items[0].Stock)
	assert.True(t, decimal.NewFromInt(12).Equal(items[0].GSTRate))
}

func TestParse_Errores(t *testing.T) {
	_, err := itemimport.Parse("lista.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, itemimport.ErrUnsupportedFormat)

	_, err = itemimport.ParseCSV(strings.NewReader("hsn,rate\n7318,1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = itemimport.ParseCSV(strings.NewReader("name,rate\nNut,abc\n"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rate", verr.Field)
	assert.Contains(t, err.Error(), "fila 2")

	_, err = itemimport.ParseCSV(strings.NewReader("name,stock\nNut,1.5\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
