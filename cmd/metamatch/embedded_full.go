// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build metamatch_full

package main

import (
	"github.com/albertocavalcante/metamatch/loader"
	"github.com/albertocavalcante/metamatch/loaders/golang"
	"github.com/albertocavalcante/metamatch/loaders/graph"
	"github.com/albertocavalcante/metamatch/loaders/java"
)

func init() {
	// Full build: adds the tree-sitter Java loader, which needs cgo
	loader.Register(golang.NewLoader())
	loader.Register(graph.NewLoader())
	loader.Register(java.NewLoader())
}
