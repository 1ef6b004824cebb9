// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics wraps the Prometheus client. Metric names are
// prefixed with the package registering them.
package metrics

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dwexplorer/common/reporter/logger"
	"dwexplorer/common/reporter/stack"
)

// Metrics represents the internal state of the metric subsystem.
type Metrics struct {
	logger    logger.Logger
	registry  *prometheus.Registry
	factories map[string]*Factory
	lock      sync.Mutex
}

// New creates a new metric registry with process and runtime
// collectors.
func New(l logger.Logger) (*Metrics, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return &Metrics{
		logger:    l,
		registry:  reg,
		factories: map[string]*Factory{},
	}, nil
}

// HTTPHandler returns an handler to serve Prometheus metrics.
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog: promHTTPLogger{m.logger},
	})
}

// prefixFor turns dwexplorer/catalog/database.(*Component).Start into
// dwexplorer_catalog_database_.
func prefixFor(function string) string {
	module := stack.ModuleName
	if strings.HasPrefix(function, stack.ModuleName+"/") {
		module, _, _ = strings.Cut(function, ".")
	}
	module = strings.NewReplacer("/", "_", ".", "_").Replace(module)
	return fmt.Sprintf("%s_", module)
}

// Factory returns a factory whose metrics are prefixed with the name of
// the calling package. skipCallstack tells how many frames to skip
// above the caller.
func (m *Metrics) Factory(skipCallstack int) *Factory {
	function := stack.Callers()[1+skipCallstack].FunctionName()
	module, _, _ := strings.Cut(function, ".")

	m.lock.Lock()
	defer m.lock.Unlock()
	if f, ok := m.factories[module]; ok {
		return f
	}
	f := &Factory{
		prefix:   prefixFor(function),
		registry: m.registry,
	}
	m.factories[module] = f
	return f
}

type promHTTPLogger struct {
	l logger.Logger
}

func (m promHTTPLogger) Println(v ...interface{}) {
	m.l.Warn().Msg(fmt.Sprint(v...))
}
