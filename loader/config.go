// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package loader

import "go.uber.org/zap"

// Config contains loader configuration.
type Config struct {
	// IncludeTests includes test sources (e.g., _test.go files).
	IncludeTests bool

	// Exclude lists directory names skipped while walking.
	Exclude []string

	// Logger receives diagnostics. Nil means no logging.
	Logger *zap.Logger

	// Options contains backend-specific options, keyed "<backend>.<name>"
	// (e.g., "java.testSuffixes").
	Options map[string]string
}

// DefaultExclude are the directories no backend descends into.
var DefaultExclude = []string{"testdata", "vendor", "node_modules", "target", "build"}

// Option returns a backend-specific option with default.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}

// Log returns the configured logger or a no-op logger.
func (c Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Excluded returns the directory names to skip: DefaultExclude when
// Exclude is nil.
func (c Config) Excluded() []string {
	if c.Exclude == nil {
		return DefaultExclude
	}
	return c.Exclude
}
