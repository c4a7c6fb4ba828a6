// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package meta declares built-in meta-annotations. Metadata discovery never
// descends into annotation types from this package.
package meta

// Documented marks an annotation type whose uses should appear in
// generated documentation.
type Documented struct{}

// Target restricts the declaration kinds an annotation type applies to
// ("type", "func", "method", "field").
type Target struct {
	Kinds []string
}
