package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Row is one record of a tabular dataset keyed by its header names.
type Row map[string]string

// Get returns the trimmed value of col, or "" when the column is absent.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Or returns the value of col, or def when it is blank.
func (r Row) Or(col, def string) string {
	if v := r.Get(col); v != "" {
		return v
	}
	return def
}

// Int parses col with LeadingInt.
func (r Row) Int(col string) int {
	return LeadingInt(r.Get(col))
}

// LeadingInt parses an optional sign and the digits that follow it, so
// "3", " 3 ", "3rd" and "3.5" all read as 3. Anything else is 0.
func LeadingInt(s string) int {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	n, digits := 0, 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		digits++
		if n > 1<<31 {
			break
		}
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// ParseCSV reads a header line followed by records. Values are trimmed,
// short records are padded with "" and blank lines are skipped.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}

	rows := []Row{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			row[h] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}

// Columns returns the union of the rows' column names, sorted.
func Columns(rows []Row) []string {
	seen := map[string]bool{}
	var cols []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// Lines renders rows one per line as "col=value" pairs in column order.
// It gives a stable text form for diffing two versions of a dataset.
func Lines(rows []Row) []string {
	cols := Columns(rows)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		parts := make([]string, 0, len(cols))
		for _, c := range cols {
			parts = append(parts, c+"="+r[c])
		}
		out = append(out, strings.Join(parts, " | "))
	}
	return out
}

// SplitList splits a sep-delimited cell into trimmed, non-empty items.
func SplitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
