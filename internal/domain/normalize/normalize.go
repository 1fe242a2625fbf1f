// Package normalize maps raw postings onto typed records.
//
// Normalization is a pure, per-record transformation: malformed or missing
// fields degrade to absent markers on that record only, so a posting with a
// broken salary still counts toward every view that does not need one.
package normalize

import (
	"strconv"
	"strings"

	"github.com/okian/joblens/internal/domain/parse"
	"github.com/okian/joblens/internal/domain/record"
)

// Normalize converts one raw posting into a Record. It never fails.
func Normalize(raw record.Raw) record.Record {
	rec := record.Record{
		Title:  stringField(raw, record.FieldTitle),
		Skills: parse.SkillList(raw[record.FieldSkills]),
	}

	// company_location wins; employee_residence is the fallback when the
	// former is absent or empty. Full names and ISO codes are both accepted
	// and deliberately not reconciled.
	rec.Country = stringField(raw, record.FieldCompanyLocation)
	if rec.Country == "" {
		rec.Country = stringField(raw, record.FieldEmployeeResidence)
	}

	if salary, ok := parse.Number(raw[record.FieldSalary]); ok {
		rec.Salary = salary
		rec.HasSalary = true
	}

	if month, ok := parse.MonthKey(raw[record.FieldPostingDate]); ok {
		rec.YearMonth = month
		if year, err := strconv.Atoi(month[:4]); err == nil {
			rec.Year = year
		}
	}

	return rec
}

// All normalizes a full raw sequence. A nil input yields an empty slice.
func All(raws []record.Raw) []record.Record {
	out := make([]record.Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// stringField reads a string-valued field, treating non-strings and
// whitespace-only values as absent. Titles and countries come through
// verbatim apart from surrounding whitespace.
func stringField(raw record.Raw, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
