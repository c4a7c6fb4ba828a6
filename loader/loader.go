// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package loader defines the interface for source backends that turn a
// source tree into an annotated entity graph.
package loader

import (
	"context"

	"github.com/albertocavalcante/metamatch/model"
)

// Loader is the interface that all source backends must implement.
type Loader interface {
	// Metadata returns information about this backend.
	Metadata() Metadata

	// Load reads the tree rooted at root and builds its universe.
	Load(ctx context.Context, root string, cfg Config) (*model.Universe, error)
}

// Metadata describes a backend.
type Metadata struct {
	// Name is the short identifier (e.g., "go", "java", "graph").
	Name string

	// Description is a human-readable description.
	Description string

	// FileExtensions lists the source extensions read (e.g., [".go"]).
	FileExtensions []string

	// Markers lists files whose presence at the root identifies a tree
	// this backend understands (e.g., ["go.mod"]).
	Markers []string

	// MetaDataType is the default qualified name of the metadata
	// annotation type for this language.
	MetaDataType string

	// ReservedPrefixes are the default platform annotation namespaces that
	// discovery never descends into.
	ReservedPrefixes []string
}
