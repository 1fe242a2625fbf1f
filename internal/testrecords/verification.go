package testrecords

import (
	"context"
	"fmt"

	"github.com/okian/joblens/pkg/logger"
)

// Table bound constants matching the service defaults.
const (
	maxRoleRows    = 10
	maxSkillRows   = 12
	maxCountryRows = 8
)

// verifyInsights checks the retrieved tables against the documented bounds
// and ordering guarantees.
func verifyInsights(ctx context.Context, view *insightsView, stats *Stats) error {
	logger.Get().Info(ctx, "verifying insight tables")

	if len(view.TopRoles) > maxRoleRows {
		return fmt.Errorf("topRoles has %d rows, want at most %d", len(view.TopRoles), maxRoleRows)
	}
	if len(view.SalaryByRole) > maxRoleRows {
		return fmt.Errorf("salaryByRole has %d rows, want at most %d", len(view.SalaryByRole), maxRoleRows)
	}
	if len(view.SkillsDemand) > maxSkillRows {
		return fmt.Errorf("skillsDemand has %d rows, want at most %d", len(view.SkillsDemand), maxSkillRows)
	}
	if len(view.JobsByCountry) > maxCountryRows {
		return fmt.Errorf("jobsByCountry has %d rows, want at most %d", len(view.JobsByCountry), maxCountryRows)
	}

	for i := 1; i < len(view.TopRoles); i++ {
		if view.TopRoles[i].Count > view.TopRoles[i-1].Count {
			return fmt.Errorf("topRoles not sorted descending at row %d", i)
		}
	}
	for i := 1; i < len(view.SkillsDemand); i++ {
		if view.SkillsDemand[i].Count > view.SkillsDemand[i-1].Count {
			return fmt.Errorf("skillsDemand not sorted descending at row %d", i)
		}
	}
	for i := 1; i < len(view.JobsByCountry); i++ {
		if view.JobsByCountry[i].Count > view.JobsByCountry[i-1].Count {
			return fmt.Errorf("jobsByCountry not sorted descending at row %d", i)
		}
	}
	for i := 1; i < len(view.SalaryTrend); i++ {
		if view.SalaryTrend[i].Month <= view.SalaryTrend[i-1].Month {
			return fmt.Errorf("salaryTrend not sorted ascending at row %d", i)
		}
	}

	if view.Status.Rows < stats.RecordsAccepted {
		logger.Get().Warn(ctx, "dataset smaller than accepted count; some records may still be queued",
			logger.Int("rows", view.Status.Rows),
			logger.Int("accepted", stats.RecordsAccepted),
		)
	}

	logger.Get().Info(ctx, "insight tables verified",
		logger.Int("topRoles", len(view.TopRoles)),
		logger.Int("salaryByRole", len(view.SalaryByRole)),
		logger.Int("skillsDemand", len(view.SkillsDemand)),
		logger.Int("jobsByCountry", len(view.JobsByCountry)),
		logger.Int("salaryTrend", len(view.SalaryTrend)),
		logger.Int("rows", view.Status.Rows),
	)
	return nil
}
