// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package logger is a thin wrapper around zerolog.
//
// Each log line gets a "caller" and a "module" field. The module is
// the first package of the call stack belonging to this module.
package logger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dwexplorer/common/reporter/stack"
)

// Logger is a logger instance.
type Logger struct {
	zerolog.Logger
}

// New creates a new logger from the global zerolog logger.
func New(_ Configuration) (Logger, error) {
	return Logger{log.Logger.Hook(contextHook{})}, nil
}

type contextHook struct{}

// Run adds "caller" and "module" to an event.
func (contextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	callStack := stack.Callers()
	if len(callStack) < 4 {
		return
	}
	callStack = callStack[3:] // hook, event, then the caller
	e.Str("caller", callStack[0].SourceFile(true))
	for _, call := range callStack {
		module := call.FunctionName()
		if !strings.HasPrefix(module, stack.ModuleName+"/") {
			continue
		}
		module, _, _ = strings.Cut(module, ".")
		e.Str("module", module)
		break
	}
}
