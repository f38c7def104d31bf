// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package breadcrumbs

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a trail operation receives a value of the
// wrong shape. Every validation error wraps it.
var ErrInvalidInput = errors.New("invalid input")

// invalidInput builds an error naming the failing operation.
func invalidInput(op, format string, args ...any) error {
	return fmt.Errorf("breadcrumbs: %s: %s: %w", op, fmt.Sprintf(format, args...), ErrInvalidInput)
}

// typeName describes v for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
