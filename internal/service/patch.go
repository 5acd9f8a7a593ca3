package service

import (
	"sort"
	"strings"
)

// columnPatch collects the columns of a typed patch request
type columnPatch struct {
	columns map[string]interface{}
	missing []string
}

func newColumnPatch() *columnPatch {
	return &columnPatch{columns: make(map[string]interface{})}
}

// text sets a trimmed string column when value is non-nil. A required
// column given as blank is reported as missing instead.
func (p *columnPatch) text(column string, value *string, required bool) {
	if value == nil {
		return
	}
	v := strings.TrimSpace(*value)
	if required && v == "" {
		p.missing = append(p.missing, column)
		return
	}
	p.columns[column] = v
}

func (p *columnPatch) set(column string, value interface{}) {
	p.columns[column] = value
}

func (p *columnPatch) has(column string) bool {
	_, ok := p.columns[column]
	return ok
}

func (p *columnPatch) err() error {
	if len(p.missing) > 0 {
		return &MissingFieldsError{Fields: p.missing}
	}
	if len(p.columns) == 0 {
		return ErrNoFieldsToUpdate
	}
	return nil
}

// fields returns the patched column names in a stable order
func (p *columnPatch) fields() []string {
	names := make([]string, 0, len(p.columns))
	for name := range p.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
