package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El parser valida el header y convierte las filas a su forma tipada.
func TestParseImportCSV_HeaderYFilas(t *testing.T) {
	csv := "sku,location_code,quantity\n" +
		"SKU-001,BODEGA,10\n" +
		" SKU-002 , tienda , 0\n"

	rows, err := parseImportCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "SKU-001", rows[0].SKU)
	assert.Equal(t, "BODEGA", rows[0].LocationCode)
	assert.Equal(t, int64(10), rows[0].Quantity)

	assert.Equal(t, "SKU-002", rows[1].SKU, "los campos se recortan")
	assert.Equal(t, "tienda", rows[1].LocationCode)
	assert.Equal(t, int64(0), rows[1].Quantity)
}

// El header es obligatorio y debe traer las columnas esperadas.
func TestParseImportCSV_HeaderInvalido(t *testing.T) {
	_, err := parseImportCSV(strings.NewReader(""))
	assert.Error(t, err, "archivo vacío")

	_, err = parseImportCSV(strings.NewReader("codigo,cantidad\nA,1\n"))
	assert.Error(t, err, "columnas equivocadas")

	// el header acepta mayúsculas
	rows, err := parseImportCSV(strings.NewReader("SKU,Location_Code,Quantity\nA,B,1\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// Una cantidad no numérica no aborta el parseo: la fila queda marcada con -1
// para que el caso de uso la reporte como error de fila.
func TestParseImportCSV_CantidadNoNumerica(t *testing.T) {
	rows, err := parseImportCSV(strings.NewReader("sku,location_code,quantity\nSKU-001,BODEGA,abc\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-1), rows[0].Quantity)
}
