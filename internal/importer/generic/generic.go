// Package generic reads the plain "Date,Description,Amount" CSV layout with
// ISO dates and signed dot-decimal amounts.
package generic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/networth/internal/encoding"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
)

var ErrMissingHeader = errors.New("expected a header with Date, Description and Amount columns")

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
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIdx, descIdx, amountIdx := -1, -1, -1

	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "date":
			dateIdx = i
		case "description":
			descIdx = i
		case "amount":
			amountIdx = i
		}
	}

	if dateIdx < 0 || descIdx < 0 || amountIdx < 0 {
		return nil, ErrMissingHeader
	}

	var params []transaction.CreateParams

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}

		line, _ := reader.FieldPos(0)

		if blank(row) {
			continue
		}

		p, err := parseRow(row, dateIdx, descIdx, amountIdx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		if p.Amount.IsZero() {
			continue
		}

		params = append(params, p)
	}

	return params, nil
}

func parseRow(row []string, dateIdx, descIdx, amountIdx int) (transaction.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, cell(row, dateIdx))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid date %q", cell(row, dateIdx))
	}

	desc := cell(row, descIdx)
	if desc == "" {
		return transaction.CreateParams{}, errors.New("missing description")
	}

	amount, err := decimal.NewFromString(cell(row, amountIdx))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid amount %q", cell(row, amountIdx))
	}

	typ := transaction.TypeIncome
	if amount.IsNegative() {
		typ = transaction.TypeExpense
	}

	return transaction.CreateParams{
		Amount:      amount.Abs(),
		Type:        typ,
		Description: desc,
		Date:        &date,
	}, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
