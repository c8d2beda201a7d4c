package workerpool

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/joeycumines/go-flowgraph/flog"
)

// ScheduledJob pairs a periodic function with its firing rate, for use
// with ScheduleMany.
type ScheduledJob struct {
	F    func() error
	Rate time.Duration
}

// ScheduledTask represents a running background scheduler, backed by a
// single goroutine and one time.Ticker per job. Stop must be called to
// release the ticker(s) and goroutine.
type ScheduledTask struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Schedule starts a single-goroutine scheduler firing f every period, at a
// fixed rate. Errors returned by f are logged and
// swallowed; f continues to be invoked on subsequent ticks.
func Schedule(f func() error, period time.Duration) *ScheduledTask {
	return ScheduleMany([]ScheduledJob{{F: f, Rate: period}})
}

// ScheduleMany starts a single-goroutine scheduler running every job in
// jobs, each at its own fixed rate, sharing one background goroutine.
func ScheduleMany(jobs []ScheduledJob) *ScheduledTask {
	t := &ScheduledTask{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	tickers := make([]*time.Ticker, len(jobs))
	for i, job := range jobs {
		tickers[i] = time.NewTicker(job.Rate)
	}

	// cases[0] is always the stop channel; cases[1+i] corresponds to
	// tickers[i]/jobs[i]. reflect.Select lets us wait on a dynamically
	// sized set of tickers with a single goroutine, rather than spawning
	// one fan-in goroutine per job.
	cases := make([]reflect.SelectCase, 1+len(jobs))
	cases[0] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(t.stop)}
	for i, ticker := range tickers {
		cases[1+i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ticker.C)}
	}

	go func() {
		defer close(t.done)
		defer func() {
			for _, ticker := range tickers {
				ticker.Stop()
			}
		}()

		for {
			chosen, _, _ := reflect.Select(cases)
			if chosen == 0 {
				return
			}
			runScheduledJob(jobs[chosen-1].F)
		}
	}()

	return t
}

func runScheduledJob(f func() error) {
	defer func() {
		if r := recover(); r != nil {
			flog.Error("workerpool", "scheduled job panicked", panicToError(r), nil)
		}
	}()
	if err := f(); err != nil {
		flog.Error("workerpool", "scheduled job returned an error", err, nil)
	}
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}

// Stop stops the scheduler's ticker(s) and waits for its goroutine to
// exit. Stop is idempotent.
func (t *ScheduledTask) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}
