package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/brecho-pos/internal/application/dto"
)

// ParseCouponsCSV lee filas code;type;value[;active]. La primera fila es cabecera.
// Acepta ',' o ';' como separador y coma decimal ("12,5").
func ParseCouponsCSV(r io.Reader, latin1 bool) ([]dto.CreateCouponRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectSeparator(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	out := make([]dto.CreateCouponRequest, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 3 columnas", line)
		}
		value, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: valor %q: %w", line, rec[2], err)
		}
		in := dto.CreateCouponRequest{
			Code:  strings.TrimSpace(rec[0]),
			Type:  strings.ToUpper(strings.TrimSpace(rec[1])),
			Value: value,
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			active, err := parseBool(rec[3])
			if err != nil {
				return nil, fmt.Errorf("línea %d: active %q: %w", line, rec[3], err)
			}
			in.Active = &active
		}
		out = append(out, in)
	}
	return out, nil
}

func detectSeparator(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "s", "si", "sí", "ativo":
		return true, nil
	case "não", "nao", "n", "no", "inativo":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}
