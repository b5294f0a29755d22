// Package transactions loads the bank ledger and screens it against the
// expense policy rules. The ledger is read-only input; screening produces
// findings, never mutations.
package transactions

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hawkai/internal/domain"
)

// CSV column names as exported by the bank.
var requiredColumns = []string{
	"id_transacao", "data", "funcionario", "cargo",
	"descricao", "valor", "categoria", "departamento",
}

// ParseCSV reads the ledger export. The header row is mandatory and column
// order is taken from it, so reordered exports still parse.
func ParseCSV(r io.Reader) ([]domain.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("ledger missing column %q", name)
		}
	}

	var out []domain.Transaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tx, err := parseRecord(record, col)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

func parseRecord(record []string, col map[string]int) (domain.Transaction, error) {
	get := func(name string) string { return strings.TrimSpace(record[col[name]]) }

	date, err := time.Parse("2006-01-02", get("data"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse date: %w", err)
	}
	amount, err := strconv.ParseFloat(get("valor"), 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}
	return domain.Transaction{
		ID:          get("id_transacao"),
		Date:        date,
		Employee:    get("funcionario"),
		Role:        get("cargo"),
		Description: get("descricao"),
		Amount:      amount,
		Category:    get("categoria"),
		Department:  get("departamento"),
	}, nil
}

// Filter narrows the ledger to one employee and/or period. Person matching is
// a case-insensitive substring of the employee name, same as email filtering.
func Filter(txs []domain.Transaction, person string, period *domain.Period) []domain.Transaction {
	if person == "" && period == nil {
		return txs
	}
	personLower := strings.ToLower(person)
	var out []domain.Transaction
	for _, tx := range txs {
		if person != "" && !strings.Contains(strings.ToLower(tx.Employee), personLower) {
			continue
		}
		if period != nil && !period.Contains(tx.Date) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
