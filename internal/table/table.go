// Package table representa una exportación tabular de encuesta tal como llega:
// encabezados libres y celdas de texto sin interpretar.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/PhelGc/maria/internal/textnorm"
)

// ErrNoHeader indica que la fuente no trae ni siquiera una fila de encabezados.
var ErrNoHeader = errors.New("la tabla no tiene encabezados")

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	zipMagic = []byte("PK\x03\x04")
)

// Table es una tabla cruda: columnas con nombre y filas de celdas de texto.
// Las filas cortas se completan con celdas vacías al cargar.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// New arma una tabla y normaliza el ancho de cada fila al número de encabezados.
func New(name string, headers []string, rows [][]string) *Table {
	t := &Table{Name: name, Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, pad(r, len(headers)))
	}
	return t
}

// Len devuelve el número de filas de datos.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index devuelve la posición de la primera columna con ese encabezado exacto.
func (t *Table) Index(header string) int {
	if t == nil {
		return -1
	}
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// Column devuelve las celdas de la columna indicada, alineadas con las filas.
func (t *Table) Column(header string) ([]string, bool) {
	idx := t.Index(header)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out, true
}

// Parse detecta el formato del cuerpo (XLSX o CSV) y lo convierte en tabla.
func Parse(name string, body []byte) (*Table, error) {
	if bytes.HasPrefix(body, zipMagic) {
		return ParseXLSX(name, bytes.NewReader(body))
	}
	return ParseCSV(name, bytes.NewReader(body))
}

// ParseCSV lee un CSV con encabezados. Tolera filas de ancho irregular y comillas sueltas.
func ParseCSV(name string, r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error leyendo CSV: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrNoHeader
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("error leyendo encabezados: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error leyendo CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}
	return New(name, cleanHeaders(headers), rows), nil
}

// ParseXLSX lee la primera hoja de un libro XLSX; la primera fila son los encabezados.
func ParseXLSX(name string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error abriendo XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error leyendo hoja %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	var data [][]string
	for _, r := range rows[1:] {
		if isBlank(r) {
			continue
		}
		data = append(data, r)
	}
	return New(name, cleanHeaders(rows[0]), data), nil
}

func cleanHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = textnorm.CollapseSpaces(h)
	}
	return out
}

func pad(r []string, n int) []string {
	out := make([]string, n)
	copy(out, r)
	return out
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
