package workerpool

import (
	"time"

	"github.com/joeycumines/go-flowgraph/flog"
)

// DefaultYield is the duration Work sleeps for when no yield function is
// supplied and the worker's scheduler currently has no input.
const DefaultYield = 5 * time.Second

type (
	// Transform is a one-method adapter for a graph node's transform
	// function, mirroring flowgraph.Transform without introducing an
	// import cycle between workerpool and the root package.
	Transform interface {
		Apply(value any) (any, error)
	}

	// Sink accepts a value, fanning it out however the node's lowering
	// pass configured (e.g. into each child's edge queue).
	Sink interface {
		Offer(value any) error
	}

	// Poller is polled non-blockingly for the next task. Ok is false when
	// no task is currently available.
	Poller interface {
		PollTask() (task any, ok bool)
	}

	// WorkItem is the bundle a Scheduler hands back on every iteration of
	// the worker loop: the current transform, its input, its output sink,
	// and the execution strategy to apply them with.
	WorkItem struct {
		F   Transform
		In  Poller
		Out Sink
		Exec Exec
	}

	// Scheduler returns the current WorkItem for a worker to execute. It
	// is called on every iteration, so that lowering passes may swap a
	// node's transform/queues without restarting its pool.
	Scheduler func() WorkItem

	// Exec is the pluggable strategy deciding how a transform's result
	// becomes child input (exec strategy pluggability).
	Exec interface {
		Run(f Transform, task any, out Sink) error
	}
)

// SyncExec applies f to task and, if f succeeds and out is non-nil, offers
// the result to out; f's error is returned without offering anything. This
// is the "sync" strategy.
type SyncExec struct{}

func (SyncExec) Run(f Transform, task any, out Sink) error {
	result, err := f.Apply(task)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return out.Offer(result)
}

// AsyncExec delegates entirely to f, which is responsible for calling out
// itself -- zero, one, or many times, synchronously or later. This is the
// "async" strategy.
type AsyncExec struct{}

func (AsyncExec) Run(f Transform, task any, out Sink) error {
	_, err := f.Apply(withAsyncOut(task, out))
	return err
}

// AsyncTask carries the out Sink alongside the original task value, for
// AsyncExec transforms that need to call out themselves. Transforms
// participating in async exec should type-assert their input to
// *AsyncTask.
type AsyncTask struct {
	Value any
	Out   Sink
}

func withAsyncOut(task any, out Sink) any {
	return &AsyncTask{Value: task, Out: out}
}

// Work builds the function a Pool worker goroutine runs repeatedly: on
// each iteration it calls scheduler to get the current WorkItem, polls
// In; if a task is present it executes it via Exec, logging and
// swallowing any returned business error, otherwise it calls yield (which
// defaults to sleeping DefaultYield).
func Work(scheduler Scheduler, yield func()) func() {
	if yield == nil {
		yield = func() { time.Sleep(DefaultYield) }
	}
	return func() {
		item := scheduler()
		if item.In == nil {
			yield()
			return
		}

		task, ok := item.In.PollTask()
		if !ok {
			yield()
			return
		}

		exec := item.Exec
		if exec == nil {
			exec = SyncExec{}
		}

		if err := exec.Run(item.F, task, item.Out); err != nil {
			logBusinessError(err)
		}
	}
}

func logBusinessError(err error) {
	businessErrorLogger(err)
}

// businessErrorLogger is a package variable so tests can observe swallowed
// errors without depending on flog's global state.
var businessErrorLogger = defaultBusinessErrorLogger

func defaultBusinessErrorLogger(err error) {
	flog.Error("workerpool", "transform returned an error", err, nil)
}
