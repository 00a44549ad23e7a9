// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

import "errors"

var (
	// ErrDataUnavailable is returned when the backing store cannot be read or
	// holds no foods. The previous snapshot, if any, remains in service.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrReloadInProgress is returned when a reload is requested while
	// another one is still running.
	ErrReloadInProgress = errors.New("reload already in progress")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid recommend config")
)
