// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package stack walks the call stack to name the calling package. It
// is used to attach a module to log lines and to prefix metrics.
package stack

import (
	"fmt"
	"runtime"
	"strings"
)

// Call is a single program counter from a goroutine stack.
type Call uintptr

// Trace is a sequence of calls, innermost first.
type Trace []Call

// Callers returns the stack of the caller.
func Callers() Trace {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	trace := make(Trace, n)
	for i, pc := range pcs[:n] {
		trace[i] = Call(pc)
	}
	return trace
}

func (pc Call) function() *runtime.Func {
	return runtime.FuncForPC(uintptr(pc) - 1)
}

// FunctionName returns the fully qualified function name of the call,
// including the import path.
func (pc Call) FunctionName() string {
	fn := pc.function()
	if fn == nil {
		return "(nofunc)"
	}
	return fn.Name()
}

// SourceFile returns the source file of the call relative to the
// module root, prefixed with the module name.
func (pc Call) SourceFile(withLine bool) string {
	fn := pc.function()
	if fn == nil {
		return "(nosource)"
	}
	file, line := fn.FileLine(uintptr(pc) - 1)
	name := fn.Name()

	// Keep as many path elements as the import path has.
	depth := strings.Count(name, "/")
	for strings.Count(file, "/") > depth {
		file = file[strings.Index(file, "/")+1:]
	}
	dot := strings.Index(name, ".")
	if dot == -1 {
		return "(nosource)"
	}
	module, _, _ := strings.Cut(name[:dot], "/")
	if withLine {
		return fmt.Sprintf("%s/%s:%d", module, file, line)
	}
	return fmt.Sprintf("%s/%s", module, file)
}

var (
	ownPackage = strings.SplitN(Callers()[0].FunctionName(), ".", 2)[0] // dwexplorer/common/reporter/stack

	// ModuleName is the name of the current module.
	ModuleName = strings.TrimSuffix(ownPackage, "/common/reporter/stack")
)
