// Package supervisor runs the device's outer loop.
//
// Each pass signals the link state (reconnecting if needed), waits one
// interval, then hands control to the request handler. How long the handler
// keeps control depends on the Mode.
package supervisor

import (
	"context"
	"log"
	"net"
	"sync"
	"time"

	"PicoWeather/status"
)

// DefaultInterval is the pause between the link check and serving.
const DefaultInterval = time.Second

type Mode int

const (
	// Nested serves until the listener fails; the link is only re-checked
	// after that. Under normal operation the first pass never ends.
	Nested Mode = iota
	// PerRequest serves one connection per pass, so the link is checked
	// before every request.
	PerRequest
)

func (m Mode) String() string {
	if m == PerRequest {
		return "per-request"
	}
	return "nested"
}

type Link interface {
	Connected() bool
	Reconnect() error
}

type Server interface {
	Serve(ln net.Listener) error
	ServeOne(ln net.Listener) error
}

type Loop struct {
	Link      Link
	Indicator status.Signaler
	Server    Server
	Clock     status.Sleeper
	// Listen opens the request listener. Nested mode opens a fresh one on
	// every pass; PerRequest keeps the first one.
	Listen   func() (net.Listener, error)
	Mode     Mode
	Interval time.Duration

	mu sync.Mutex
	ln net.Listener
}

// Run loops until ctx is cancelled. Cancelling closes the open listener to
// unblock Accept.
func (l *Loop) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, l.closeListener)
	defer stop()
	defer l.closeListener()

	for ctx.Err() == nil {
		l.Step(ctx)
	}
	return ctx.Err()
}

// Step runs one pass of the loop.
func (l *Loop) Step(ctx context.Context) {
	if l.Link.Connected() {
		l.Indicator.Signal(status.Connected)
	} else {
		l.Indicator.Signal(status.Connecting)
		if err := l.Link.Reconnect(); err != nil {
			log.Printf("Reconnect failed: %v\n", err)
		}
	}

	l.Clock.Sleep(l.interval())
	if ctx.Err() != nil {
		return
	}

	ln, err := l.listener(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Couldn't listen: %v\n", err)
		}
		return
	}

	switch l.Mode {
	case PerRequest:
		err = l.Server.ServeOne(ln)
		if err != nil {
			l.closeListener()
		}
	default:
		err = l.Server.Serve(ln)
		l.closeListener()
	}
	if err != nil && ctx.Err() == nil {
		log.Printf("Server stopped (%v)\n", err)
	}
}

func (l *Loop) interval() time.Duration {
	if l.Interval > 0 {
		return l.Interval
	}
	return DefaultInterval
}

func (l *Loop) listener(ctx context.Context) (net.Listener, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.ln != nil {
		return l.ln, nil
	}
	ln, err := l.Listen()
	if err != nil {
		return nil, err
	}
	l.ln = ln
	return ln, nil
}

func (l *Loop) closeListener() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln != nil {
		l.ln.Close()
		l.ln = nil
	}
}
