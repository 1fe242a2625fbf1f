package testrecords

import (
	"time"

	"github.com/okian/joblens/internal/domain/record"
)

// Config holds configuration for the record seeding run.
type Config struct {
	BaseURL       string        // Base URL of the service
	NumRecords    int           // Number of postings to generate
	BatchSize     int           // Postings per POST /records request
	Workers       int           // Number of concurrent submitters
	Timeout       time.Duration // HTTP request timeout
	MalformedRate float64       // Fraction of postings with damaged fields (0.0-1.0)
	WaitTime      time.Duration // Time to wait for async processing before verification
	LogFile       string        // Log file for seeding output
	Verbose       bool          // Enable verbose logging
}

// Stats holds seeding statistics.
type Stats struct {
	RecordsGenerated int
	RecordsSubmitted int
	RecordsAccepted  int
	RecordsRejected  int
	BatchesFailed    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// ingestAck mirrors the POST /records response.
type ingestAck struct {
	Status   string `json:"status"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// insightsView mirrors the GET /insights response shape for verification.
type insightsView struct {
	TopRoles []struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	} `json:"topRoles"`
	SalaryByRole []struct {
		Role      string `json:"role"`
		AvgSalary int    `json:"avgSalary"`
	} `json:"salaryByRole"`
	SkillsDemand []struct {
		Skill string `json:"skill"`
		Count int    `json:"count"`
	} `json:"skillsDemand"`
	JobsByCountry []struct {
		Country string `json:"country"`
		Count   int    `json:"count"`
	} `json:"jobsByCountry"`
	SalaryTrend []struct {
		Month     string `json:"month"`
		AvgSalary int    `json:"avgSalary"`
	} `json:"salaryTrend"`
	Status struct {
		Rows int `json:"rows"`
	} `json:"status"`
}

// batch is a slice of raw postings submitted in one request.
type batch []record.Raw
