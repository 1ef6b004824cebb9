// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

//go:build !release

// Package helpers contains small functions usable by any other
// package, both for testing or not.
package helpers

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// CheckExternalService checks an external service is reachable on one
// of the provided addresses and returns the first one answering. The
// test is skipped when none answers, unless CI_DWEXPLORER_FUNCTIONAL_TESTS
// is set.
func CheckExternalService(t *testing.T, name string, candidates []string) string {
	t.Helper()
	if testing.Short() {
		t.Skipf("Skip test with real %s in short mode", name)
	}
	for _, candidate := range candidates {
		conn, err := net.DialTimeout("tcp", candidate, 200*time.Millisecond)
		if err == nil {
			conn.Close()
			return candidate
		}
	}
	if os.Getenv("CI_DWEXPLORER_FUNCTIONAL_TESTS") != "" {
		t.Fatalf("%s is not running (CI_DWEXPLORER_FUNCTIONAL_TESTS is set)", name)
	}
	t.Skipf("%s is not running (CI_DWEXPLORER_FUNCTIONAL_TESTS is not set)", name)
	return ""
}

type starter interface {
	Start() error
}
type stopper interface {
	Stop() error
}

// StartStop starts a component and stops it on cleanup.
func StartStop(t *testing.T, component any) {
	t.Helper()
	if c, ok := component.(starter); ok {
		if err := c.Start(); err != nil {
			t.Fatalf("Start() error:\n%+v", err)
		}
	}
	t.Cleanup(func() {
		if c, ok := component.(stopper); ok {
			if err := c.Stop(); err != nil {
				t.Errorf("Stop() error:\n%+v", err)
			}
		}
	})
}

// Pos is a file:line recording a test data position.
type Pos struct {
	file string
	line int
}

// Mark reports the file:line position of the source file in which it appears.
func Mark() Pos {
	_, file, line, _ := runtime.Caller(1)
	return Pos{filepath.Base(file), line}
}

// String returns a textual representation of a Pos, with a trailing
// colon and space so it can prefix a message.
func (p Pos) String() string {
	if p.file == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d: ", p.file, p.line)
}
