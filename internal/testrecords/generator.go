package testrecords

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/joblens/internal/domain/record"
	"github.com/okian/joblens/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Source pools for synthetic postings.
var (
	roles = []string{
		"ML Engineer", "Data Scientist", "Data Engineer", "Backend Engineer",
		"Data Analyst", "Research Scientist", "MLOps Engineer", "AI Product Manager",
		"Analytics Engineer", "Platform Engineer",
	}

	skillSets = []string{
		"Python, SQL",
		"Python, PyTorch and CUDA",
		"Go; Kubernetes; Terraform",
		"SQL | dbt | Airflow",
		"Python, Spark / Scala",
		"R and Python and SQL",
		"Excel, Tableau; SQL",
	}

	countries = []string{
		"US", "United States", "DE", "GB", "Canada", "NL", "IN", "France",
	}

	months = []string{
		"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06",
	}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pick returns a random element of pool.
func pick(pool []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	return pool[n.Int64()]
}

// generateRecords creates the configured number of synthetic postings, a
// configurable fraction of them deliberately damaged so the pipeline's
// degradation paths see traffic too.
func generateRecords(ctx context.Context, config *Config, stats *Stats) []record.Raw {
	logger.Get().Info(ctx, "generating postings",
		logger.Int("numRecords", config.NumRecords),
		logger.Float64("malformedRate", config.MalformedRate),
	)

	out := make([]record.Raw, config.NumRecords)
	for i := range out {
		if getRandomFloat() < config.MalformedRate {
			out[i] = generateMalformed()
			continue
		}
		out[i] = generateWellFormed()
	}

	stats.RecordsGenerated = len(out)
	logger.Get().Info(ctx, "generated postings", logger.Int("count", len(out)))
	return out
}

// generateWellFormed creates a posting with all fields usable. Salaries are
// rendered in a noisy currency format on purpose; the parser is expected to
// cope.
func generateWellFormed() record.Raw {
	salary := 60000 + int(getRandomFloat()*120000)
	day := 1 + int(getRandomFloat()*27)
	return record.Raw{
		"posting_id":       uuid.New().String(),
		"job_title":        pick(roles),
		"company_location": pick(countries),
		"salary_usd":       fmt.Sprintf("$%d,%03d USD", salary/1000, salary%1000),
		"required_skills":  pick(skillSets),
		"posting_date":     fmt.Sprintf("%s-%02d", pick(months), day),
	}
}

// generateMalformed creates a posting with damaged or missing fields:
// unparseable salary, garbage date, absent title, residence-only location.
func generateMalformed() record.Raw {
	n, _ := rand.Int(rand.Reader, big.NewInt(4))
	switch n.Int64() {
	case 0:
		return record.Raw{
			"job_title":    pick(roles),
			"salary_usd":   "N/A",
			"posting_date": "unknown",
		}
	case 1:
		return record.Raw{
			"employee_residence": pick(countries),
			"required_skills":    pick(skillSets),
			"posting_date":       "around " + pick(months)[:4] + "/3 maybe",
		}
	case 2:
		return record.Raw{
			"job_title":  "",
			"salary_usd": map[string]any{"amount": 100000},
		}
	default:
		return record.Raw{
			"company_location": "   ",
			"required_skills":  " , ; | ",
		}
	}
}
