// Package cgd reads statement exports from Caixa Geral de Depósitos.
package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/networth/internal/encoding"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

const dateLayout = "02-01-2006"

var ErrUnknownFormat = errors.New("no matching CGD format found: expected columns for conta, extrato, or cartão")

// Parser detects which CGD layout a file uses from its header row. Returned
// params carry amount, type, description and date only.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, header := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	var params []transaction.CreateParams

	for i, row := range rows[header+1:] {
		date, ok := parseDate(cellValue(row, cols[profile.DateCol]))
		if !ok {
			continue
		}

		desc := cellValue(row, cols[profile.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", header+i+2)
		}

		amount, typ, ok := profile.amount(cols, row)
		if !ok {
			continue
		}

		params = append(params, transaction.CreateParams{
			Amount:      amount,
			Type:        typ,
			Description: desc,
			Date:        &date,
		})
	}

	return params, nil
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex, len(row))

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if hasAll(cols, profiles[i].requiredCols()) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func hasAll(cols colIndex, names []string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// Footer and page rows have no parseable date and are skipped.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
