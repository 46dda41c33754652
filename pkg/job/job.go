package job

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type Func func(ctx context.Context) error

// Observer is told about every finished run.
type Observer interface {
	JobFinished(name string, elapsed time.Duration, err error)
}

type job struct {
	name     string
	interval time.Duration
	fn       Func
}

// Runner runs registered jobs on their intervals until the context is done.
// Runs of one job never overlap and each is bounded by the job interval.
type Runner struct {
	jobs     []job
	observer Observer
	wg       sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) WithObserver(o Observer) *Runner {
	r.observer = o
	return r
}

// Every registers fn. Jobs with a non-positive interval are disabled.
func (r *Runner) Every(name string, interval time.Duration, fn Func) *Runner {
	if interval <= 0 {
		slog.Info("job disabled", "job", name)
		return r
	}

	r.jobs = append(r.jobs, job{
		name:     name,
		interval: interval,
		fn:       fn,
	})

	return r
}

func (r *Runner) Start(ctx context.Context) *Runner {
	for _, j := range r.jobs {
		r.wg.Add(1)

		go r.loop(ctx, j)
	}

	return r
}

// Wait blocks until every job loop has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, j job) {
	defer r.wg.Done()

	l := slog.Default().With("job", j.name)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		r.runOnce(ctx, l, j)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, l *slog.Logger, j job) {
	started := time.Now()

	err := safeRun(ctx, j)
	elapsed := time.Since(started)

	if err != nil {
		l.ErrorContext(ctx, "job failed", "error", err, "elapsed", elapsed.String())
	} else {
		l.DebugContext(ctx, "job done", "elapsed", elapsed.String())
	}

	if r.observer != nil {
		r.observer.JobFinished(j.name, elapsed, err)
	}
}

func safeRun(ctx context.Context, j job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, j.interval)
	defer cancel()

	return j.fn(ctx)
}
