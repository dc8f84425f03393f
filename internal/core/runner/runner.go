package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
)

// RunAll dispatches every probe concurrently and waits until all of them
// have settled. A probe failure (or panic) never aborts its siblings;
// the returned slice always has one Result per probe, in probe order.
func RunAll(ctx context.Context, probes []check.Probe) []check.Result {
	results := make([]check.Result, len(probes))
	var wg sync.WaitGroup

	for i, p := range probes {
		wg.Add(1)
		go func(i int, p check.Probe) {
			defer wg.Done()
			results[i] = settle(ctx, p)
		}(i, p)
	}

	wg.Wait()
	return results
}

// settle runs a single probe, converting a panic into a failed Result.
// Elapsed time is stamped on every path, including the panic path.
func settle(ctx context.Context, p check.Probe) (res check.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = check.Fail(p.Name(), check.KindException, fmt.Sprintf("panic: %v", r))
		}
		res.Elapsed = time.Since(start)
		if res.CheckedAt.IsZero() {
			res.CheckedAt = time.Now()
		}
	}()

	res = p.Probe(ctx)
	return res
}
