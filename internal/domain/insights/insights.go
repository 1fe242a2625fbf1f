// Package insights turns normalized posting records into the ranked summary
// tables served by the API.
//
// Every aggregation is an independent linear pass over the same immutable
// record slice: computing one never observes another's output, and the whole
// computation is pure, so calling it twice on the same input yields identical
// results. Ordering is deterministic: ranked tables sort by metric descending
// with ties broken by first-occurrence order, and the salary trend sorts
// ascending by its fixed-width month key.
package insights

import (
	"math"
	"sort"

	"github.com/okian/joblens/internal/domain/normalize"
	"github.com/okian/joblens/internal/domain/record"
)

// Default table bounds.
const (
	defaultRoleLimit    = 10
	defaultSalaryLimit  = 10
	defaultSkillLimit   = 12
	defaultCountryLimit = 8
)

// RoleCount is one row of the top-roles table.
type RoleCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// RoleSalary is one row of the salary-by-role table. AvgSalary is the
// arithmetic mean rounded half away from zero.
type RoleSalary struct {
	Role      string `json:"role"`
	AvgSalary int    `json:"avgSalary"`
}

// SkillCount is one row of the skills-demand table.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// CountryCount is one row of the jobs-by-country table.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// MonthSalary is one row of the salary trend, keyed by "YYYY-MM".
type MonthSalary struct {
	Month     string `json:"month"`
	AvgSalary int    `json:"avgSalary"`
}

// Status is the read-only digest of a computation pass.
type Status struct {
	Rows          int `json:"rows"`
	TopRoles      int `json:"topRoles"`
	SalaryByRole  int `json:"salaryByRole"`
	SkillsDemand  int `json:"skillsDemand"`
	JobsByCountry int `json:"jobsByCountry"`
	SalaryTrend   int `json:"salaryTrend"`
}

// Insights bundles the five tables and the digest.
type Insights struct {
	TopRoles      []RoleCount    `json:"topRoles"`
	SalaryByRole  []RoleSalary   `json:"salaryByRole"`
	SkillsDemand  []SkillCount   `json:"skillsDemand"`
	JobsByCountry []CountryCount `json:"jobsByCountry"`
	SalaryTrend   []MonthSalary  `json:"salaryTrend"`
	Status        Status         `json:"status"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRoleLimit bounds the top-roles table.
func WithRoleLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.roleLimit = n
		}
	}
}

// WithSalaryLimit bounds the salary-by-role table.
func WithSalaryLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.salaryLimit = n
		}
	}
}

// WithSkillLimit bounds the skills-demand table.
func WithSkillLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.skillLimit = n
		}
	}
}

// WithCountryLimit bounds the jobs-by-country table.
func WithCountryLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.countryLimit = n
		}
	}
}

// Engine computes insights with configured table bounds.
type Engine struct {
	roleLimit    int
	salaryLimit  int
	skillLimit   int
	countryLimit int
}

// New creates an Engine with default bounds, adjusted by options.
func New(opts ...Option) *Engine {
	e := &Engine{
		roleLimit:    defaultRoleLimit,
		salaryLimit:  defaultSalaryLimit,
		skillLimit:   defaultSkillLimit,
		countryLimit: defaultCountryLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute runs all five aggregations over recs and assembles the digest.
// A nil or empty input yields empty tables, never an error.
func (e *Engine) Compute(recs []record.Record) Insights {
	out := Insights{
		TopRoles:      e.topRoles(recs),
		SalaryByRole:  e.salaryByRole(recs),
		SkillsDemand:  e.skillsDemand(recs),
		JobsByCountry: e.jobsByCountry(recs),
		SalaryTrend:   e.salaryTrend(recs),
	}
	out.Status = Status{
		Rows:          len(recs),
		TopRoles:      len(out.TopRoles),
		SalaryByRole:  len(out.SalaryByRole),
		SkillsDemand:  len(out.SkillsDemand),
		JobsByCountry: len(out.JobsByCountry),
		SalaryTrend:   len(out.SalaryTrend),
	}
	return out
}

// ComputeInsights is the one-shot entry point: normalize raw postings, then
// aggregate. Fully deterministic given the same input.
func ComputeInsights(raws []record.Raw, opts ...Option) Insights {
	return New(opts...).Compute(normalize.All(raws))
}

func (e *Engine) topRoles(recs []record.Record) []RoleCount {
	c := newCounter()
	for _, r := range recs {
		if r.HasTitle() {
			c.add(r.Title)
		}
	}
	ranked := c.ranked(e.roleLimit)
	out := make([]RoleCount, len(ranked))
	for i, kc := range ranked {
		out[i] = RoleCount{Title: kc.key, Count: kc.count}
	}
	return out
}

func (e *Engine) salaryByRole(recs []record.Record) []RoleSalary {
	m := newMeans()
	for _, r := range recs {
		if r.HasTitle() && r.HasSalary {
			m.add(r.Title, r.Salary)
		}
	}
	ranked := m.rankedDesc(e.salaryLimit)
	out := make([]RoleSalary, len(ranked))
	for i, km := range ranked {
		out[i] = RoleSalary{Role: km.key, AvgSalary: km.mean}
	}
	return out
}

func (e *Engine) skillsDemand(recs []record.Record) []SkillCount {
	c := newCounter()
	for _, r := range recs {
		for _, skill := range r.Skills {
			c.add(skill)
		}
	}
	ranked := c.ranked(e.skillLimit)
	out := make([]SkillCount, len(ranked))
	for i, kc := range ranked {
		out[i] = SkillCount{Skill: kc.key, Count: kc.count}
	}
	return out
}

func (e *Engine) jobsByCountry(recs []record.Record) []CountryCount {
	c := newCounter()
	for _, r := range recs {
		if r.HasCountry() {
			c.add(r.Country)
		}
	}
	ranked := c.ranked(e.countryLimit)
	out := make([]CountryCount, len(ranked))
	for i, kc := range ranked {
		out[i] = CountryCount{Country: kc.key, Count: kc.count}
	}
	return out
}

func (e *Engine) salaryTrend(recs []record.Record) []MonthSalary {
	m := newMeans()
	for _, r := range recs {
		if r.HasMonth() && r.HasSalary {
			m.add(r.YearMonth, r.Salary)
		}
	}
	months := m.all()
	out := make([]MonthSalary, len(months))
	for i, km := range months {
		out[i] = MonthSalary{Month: km.key, AvgSalary: km.mean}
	}
	// Lexicographic order is chronological order for zero-padded keys.
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// counter counts occurrences per key while remembering first-occurrence
// order, which serves as the stable tie-break for ranked tables.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

type keyCount struct {
	key   string
	count int
}

// ranked returns keys sorted by count descending, ties in first-occurrence
// order, truncated to limit.
func (c *counter) ranked(limit int) []keyCount {
	out := make([]keyCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, keyCount{key: key, count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// means accumulates per-key sums for rounded arithmetic means.
type means struct {
	sums   map[string]float64
	counts map[string]int
	order  []string
}

func newMeans() *means {
	return &means{sums: map[string]float64{}, counts: map[string]int{}}
}

func (m *means) add(key string, value float64) {
	if _, seen := m.counts[key]; !seen {
		m.order = append(m.order, key)
	}
	m.sums[key] += value
	m.counts[key]++
}

type keyMean struct {
	key  string
	mean int
}

// all returns every group's rounded mean in first-occurrence order, skipping
// the (theoretically unreachable) non-finite means.
func (m *means) all() []keyMean {
	out := make([]keyMean, 0, len(m.order))
	for _, key := range m.order {
		mean := m.sums[key] / float64(m.counts[key])
		if math.IsNaN(mean) || math.IsInf(mean, 0) {
			continue
		}
		out = append(out, keyMean{key: key, mean: int(math.Round(mean))})
	}
	return out
}

// rankedDesc sorts groups by rounded mean descending with first-occurrence
// tie-break, truncated to limit.
func (m *means) rankedDesc(limit int) []keyMean {
	out := m.all()
	sort.SliceStable(out, func(i, j int) bool { return out[i].mean > out[j].mean })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
