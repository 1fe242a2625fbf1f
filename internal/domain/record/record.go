// Package record contains the posting data model passed between layers.
package record

// Raw is a job posting as received from the outside world: a loosely typed
// field map whose schema we do not own. Any field may be absent, null, or of
// an unexpected type.
type Raw map[string]any

// Field names consumed from Raw (case-sensitive).
const (
	FieldTitle             = "job_title"
	FieldCompanyLocation   = "company_location"
	FieldEmployeeResidence = "employee_residence"
	FieldSalary            = "salary_usd"
	FieldSkills            = "required_skills"
	FieldPostingDate       = "posting_date"
)

// Record is a posting after normalization. It is created once and never
// mutated. Empty string means absent for Title, Country and YearMonth;
// HasSalary marks Salary presence so a legitimate 0 salary stays
// distinguishable from a failed parse.
type Record struct {
	Title     string
	Country   string
	Salary    float64
	HasSalary bool
	Skills    []string
	Year      int
	YearMonth string // "YYYY-MM" when present
}

// HasTitle reports whether the posting carried a usable title.
func (r Record) HasTitle() bool { return r.Title != "" }

// HasCountry reports whether a country could be resolved.
func (r Record) HasCountry() bool { return r.Country != "" }

// HasMonth reports whether a posting month could be resolved.
func (r Record) HasMonth() bool { return r.YearMonth != "" }
