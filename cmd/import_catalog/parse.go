package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// row línea del CSV: categoria;nombre;descripcion;precio;unidad;cantidad
type row struct {
	Line        int
	Category    string
	Name        string
	Description string
	Price       decimal.Decimal
	Unit        string
	Quantity    int64
}

// decodeReader devuelve el contenido en UTF-8. Si la muestra inicial no es UTF-8 válido
// se asume ISO-8859-1 (exportaciones de Excel en Windows).
func decodeReader(r io.Reader) io.Reader {
	br := bufio.NewReaderSize(r, 64*1024)
	sample, _ := br.Peek(64 * 1024)
	sample = trimIncompleteRune(sample)
	if utf8.Valid(sample) {
		return br
	}
	return transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
}

// trimIncompleteRune descarta una runa cortada al final de la muestra.
func trimIncompleteRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

// parseCatalog lee el CSV separado por ';'. La primera línea es encabezado si su columna
// de precio no es numérica. Las líneas vacías se ignoran.
func parseCatalog(r io.Reader) ([]row, error) {
	cr := csv.NewReader(decodeReader(r))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 4 columnas, hay %d", line, len(rec))
		}
		price, err := parsePrice(rec[3])
		if err != nil {
			if line == 1 {
				continue // encabezado
			}
			return nil, fmt.Errorf("línea %d: precio %q inválido", line, rec[3])
		}
		r := row{
			Line:        line,
			Category:    strings.TrimSpace(rec[0]),
			Name:        strings.TrimSpace(rec[1]),
			Description: strings.TrimSpace(rec[2]),
			Price:       price,
		}
		if len(rec) > 4 {
			r.Unit = strings.TrimSpace(rec[4])
		}
		if len(rec) > 5 && strings.TrimSpace(rec[5]) != "" {
			q, err := strconv.ParseInt(strings.TrimSpace(rec[5]), 10, 64)
			if err != nil || q < 0 {
				return nil, fmt.Errorf("línea %d: cantidad %q inválida", line, rec[5])
			}
			r.Quantity = q
		}
		if r.Category == "" || r.Name == "" {
			return nil, fmt.Errorf("línea %d: categoría y nombre son obligatorios", line)
		}
		out = append(out, r)
	}
	return out, nil
}

// parsePrice acepta "2500", "2500.50" y "2500,50".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return decimal.NewFromString(s)
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
