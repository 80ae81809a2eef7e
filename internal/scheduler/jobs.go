package scheduler

import (
	"context"

	"github.com/riskibarqy/fantasy-points/internal/usecase"
)

const JobGameweekCurrent = "gameweek_current"

type CurrentGameweekRunner interface {
	RunCurrent(ctx context.Context) (usecase.FinalizeReport, error)
}

// GameweekJobs lists the scheduled gameweek jobs.
func GameweekJobs(runner CurrentGameweekRunner, spec string) []Job {
	return []Job{
		{
			Name: JobGameweekCurrent,
			Spec: spec,
			Run: func(ctx context.Context) error {
				_, err := runner.RunCurrent(ctx)
				return err
			},
		},
	}
}
