package batch

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cms-kit/schemacheck/pkg/entity"
)

// Summary counts documents by outcome.
type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// Report is the outcome of validating a set of documents.
type Report struct {
	Summary Summary         `json:"summary"`
	Results []entity.Result `json:"results"`
}

// OK reports whether every document was valid.
func (r Report) OK() bool {
	return r.Summary.Invalid == 0
}

// Warnings returns the total number of warnings across all results.
func (r Report) Warnings() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Warnings)
	}
	return n
}

// Run validates files with up to jobs concurrent workers. Results keep the
// order of files. jobs <= 0 means one worker per CPU.
func Run(ctx context.Context, v *entity.Validator, files []string, jobs int) (Report, error) {
	if v == nil {
		v = entity.NewValidator()
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]entity.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = v.Validate(file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := Report{
		Summary: Summary{Total: len(files)},
		Results: results,
	}
	for _, res := range results {
		if res.Valid {
			report.Summary.Valid++
		} else {
			report.Summary.Invalid++
		}
	}

	zap.S().Debugw("batch finished",
		"total", report.Summary.Total,
		"valid", report.Summary.Valid,
		"invalid", report.Summary.Invalid,
		"jobs", jobs,
	)
	return report, nil
}
