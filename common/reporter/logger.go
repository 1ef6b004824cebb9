// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package reporter

import "github.com/rs/zerolog"

// Logger is an alias for zerolog.Logger.
type Logger = zerolog.Logger
