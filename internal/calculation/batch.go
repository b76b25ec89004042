package calculation

import (
	"context"
	"sync"

	"github.com/maplepay/payroll-engine/internal/domain"
)

// BatchItem is one employee's inputs for a payroll run.
type BatchItem struct {
	Employee domain.EmployeeProfile
	Period   domain.PayPeriodInput
	Ytd      domain.YtdAccumulators
}

// BatchFailure records one employee's failed computation. A failure never
// blocks the rest of the run.
type BatchFailure struct {
	EmployeeID string
	Err        error
}

// BatchResult aggregates a payroll run: posted results and per-employee
// failures.
type BatchResult struct {
	Posted []*domain.PayrollResult
	Failed []BatchFailure
}

// RunBatch computes payroll for every item, fanning out across workers. Each
// employee's computation is independent, so the only coordination is result
// collection. Cancellation is cooperative: the context is checked before
// starting each employee, never mid-computation, so already-computed
// employees stay posted and the rest are simply not started.
func (e *Engine) RunBatch(ctx context.Context, items []BatchItem, taxYear int, workers int) BatchResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	type outcome struct {
		result  *domain.PayrollResult
		failure *BatchFailure
	}
	outcomes := make([]outcome, len(items))

	var wg sync.WaitGroup
	work := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				item := items[i]
				result, err := e.ComputePayrollPeriod(
					&item.Employee, &item.Period, item.Ytd, item.Employee.Province, taxYear)
				if err != nil {
					e.Log.Errorf("employee %s: %v", item.Employee.ID, err)
					outcomes[i] = outcome{failure: &BatchFailure{EmployeeID: item.Employee.ID, Err: err}}
					continue
				}
				outcomes[i] = outcome{result: result}
			}
		}()
	}

dispatch:
	for i := range items {
		select {
		case <-ctx.Done():
			break dispatch
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	var out BatchResult
	for _, o := range outcomes {
		switch {
		case o.result != nil:
			out.Posted = append(out.Posted, o.result)
		case o.failure != nil:
			out.Failed = append(out.Failed, *o.failure)
		}
	}
	return out
}
