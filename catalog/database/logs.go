// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package database

import (
	"context"
	"errors"
	"time"

	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"dwexplorer/common/reporter"
)

// logger routes gorm messages to the reporter. SQL queries are only
// logged at debug level.
type logger struct {
	r *reporter.Reporter
}

func (l *logger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	l.r.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	l.r.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	l.r.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()
	event := l.r.Debug()
	if err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) {
		event = l.r.Error().Err(err)
	}
	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", time.Since(begin)).
		Str("source", utils.FileWithLineNum()).
		Msg("SQL query")
}
