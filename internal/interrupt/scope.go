// Package interrupt scopes process signal handling to the lifetime of a command run.
package interrupt

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ErrInterrupted reports that work stopped because the user interrupted the process.
var ErrInterrupted = errors.New("interrupted")

// DefaultSignals are the signals that cancel a scope.
var DefaultSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Scope owns signal delivery and terminal echo settings until Release is called.
type Scope struct {
	context         context.Context
	cancel          context.CancelCauseFunc
	signals         chan os.Signal
	done            chan struct{}
	restoreTerminal func()
	releaseOnce     sync.Once
}

// Acquire installs handling for DefaultSignals and suppresses control character echo on an interactive stdin.
func Acquire(parent context.Context) *Scope {
	return AcquireSignals(parent, os.Stdin, DefaultSignals...)
}

// AcquireSignals installs handling for the given signals. Terminal settings of terminalFile are adjusted when it is a terminal.
func AcquireSignals(parent context.Context, terminalFile *os.File, signals ...os.Signal) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	scopeContext, cancel := context.WithCancelCause(parent)
	scope := &Scope{
		context:         scopeContext,
		cancel:          cancel,
		signals:         make(chan os.Signal, 1),
		done:            make(chan struct{}),
		restoreTerminal: hideControlCharacters(terminalFile),
	}
	signal.Notify(scope.signals, signals...)
	go scope.watch()
	return scope
}

func (scope *Scope) watch() {
	select {
	case <-scope.signals:
		scope.cancel(ErrInterrupted)
	case <-scope.done:
	}
}

// Context is cancelled when a handled signal arrives, the parent is cancelled, or the scope is released.
func (scope *Scope) Context() context.Context {
	return scope.context
}

// Interrupted reports whether a handled signal cancelled the scope.
func (scope *Scope) Interrupted() bool {
	return errors.Is(context.Cause(scope.context), ErrInterrupted)
}

// Release restores default signal handling and terminal settings. It is safe to call more than once.
func (scope *Scope) Release() {
	scope.releaseOnce.Do(func() {
		signal.Stop(scope.signals)
		close(scope.done)
		scope.cancel(context.Canceled)
		scope.restoreTerminal()
	})
}
