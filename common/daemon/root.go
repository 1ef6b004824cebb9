// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package daemon handles process-wide lifecycle: it watches the tombs
// of the other components and the termination signals, and tells the
// main loop when to exit.
package daemon

import (
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/tomb.v2"

	"dwexplorer/common/reporter"
)

// Component is the interface the daemon component provides.
type Component interface {
	Start() error
	Stop() error
	Track(t *tomb.Tomb, who string)

	// Lifecycle
	Terminated() <-chan struct{}
	Terminate()
}

type tracked struct {
	tomb   *tomb.Tomb
	origin string
}

// realComponent is a non-mock implementation of the Component
// interface.
type realComponent struct {
	r       *reporter.Reporter
	tracked []tracked

	lifecycleComponent
}

// New creates a new daemon component.
func New(r *reporter.Reporter) (Component, error) {
	return &realComponent{
		r:                  r,
		lifecycleComponent: newLifecycle(),
	}, nil
}

// Start watches tracked tombs and termination signals.
func (c *realComponent) Start() error {
	for _, t := range c.tracked {
		go func() {
			select {
			case <-t.tomb.Dying():
			case <-c.Terminated():
				return
			}
			if err := t.tomb.Err(); err != nil {
				c.r.Err(err).Str("component", t.origin).Msg("component error, quitting")
			} else {
				c.r.Debug().Str("component", t.origin).Msg("component shutting down, quitting")
			}
			c.Terminate()
		}()
	}
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(signals)
		select {
		case s := <-signals:
			c.r.Info().Stringer("signal", s).Msg("signal received, quitting")
			c.Terminate()
		case <-c.Terminated():
		}
	}()
	return nil
}

// Stop stops the component.
func (c *realComponent) Stop() error {
	c.Terminate()
	return nil
}

// Track registers a tomb to watch. A dying tomb terminates the
// daemon. It should only be called before Start().
func (c *realComponent) Track(t *tomb.Tomb, who string) {
	c.tracked = append(c.tracked, tracked{tomb: t, origin: who})
}
