package control

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
)

// Runnable is a background runner driven by a context.
type Runnable interface {
	Run(context.Context) error
}

// Runner runs Runnables and collects their errors.
type Runner struct {
	Context context.Context

	count  int
	errCh  chan error
	exitCh chan struct{}
}

// NewRunner creates a runner with a background context.
func NewRunner() *Runner {
	return &Runner{
		Context: context.Background(),
		errCh:   make(chan error, 1),
		exitCh:  make(chan struct{}),
	}
}

// HandleSignals cancels the context on interrupt or SIGTERM. A second signal
// forces exit without waiting for runners.
func (r *Runner) HandleSignals() *Runner {
	ctx, cancel := context.WithCancel(r.Context)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	r.Context = ctx
	go func() {
		<-sigCh
		glog.Info("stop requested")
		cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go spawns Runnables.
func (r *Runner) Go(runners ...Runnable) *Runner {
	for _, runner := range runners {
		r.count++
		go func(runner Runnable) {
			r.errCh <- runner.Run(r.Context)
		}(runner)
	}
	return r
}

// Wait waits for all Runnables to stop and aggregates their errors.
// context.Canceled is not treated as an error.
func (r *Runner) Wait() error {
	var errs []error
	for i := 0; i < r.count; i++ {
		select {
		case <-r.exitCh:
			return errors.New("forced exit")
		case err := <-r.errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
