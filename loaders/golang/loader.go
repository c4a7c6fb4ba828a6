// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package golang loads annotations from Go source trees.
//
// Go has no annotation syntax, so annotations are doc-comment directives
// whose text after "//@" is a Go expression naming a struct type:
//
//	//@Marker
//	//@pkg.Marker
//	//@pkg.Type{Field: "value", List: []string{"a", "b"}}
//
// Struct types are annotation types. Their own directives are
// meta-annotations, and their fields declare attributes whose defaults come
// from `default:"..."` tags (comma-separated for []string fields).
package golang

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"go.uber.org/zap"

	"github.com/albertocavalcante/metamatch/internal/source"
	"github.com/albertocavalcante/metamatch/loader"
	"github.com/albertocavalcante/metamatch/model"
)

const (
	// AnnotationPackage is the import path of the metadata annotation.
	AnnotationPackage = "github.com/albertocavalcante/metamatch/annotation"

	// MetaDataType is the default metadata annotation type.
	MetaDataType = AnnotationPackage + ".MetaData"

	// ReservedPrefix is the namespace of the built-in meta-annotations.
	ReservedPrefix = AnnotationPackage + "/meta."

	// TargetType restricts where an annotation type may be used.
	TargetType = ReservedPrefix + "Target"
)

// GoLoader implements [loader.Loader] for Go sources.
type GoLoader struct{}

// NewLoader creates a new Go loader.
func NewLoader() *GoLoader {
	return &GoLoader{}
}

// Metadata returns information about this loader.
func (l *GoLoader) Metadata() loader.Metadata {
	return loader.Metadata{
		Name:             "go",
		Description:      "Go sources with //@ annotation directives",
		FileExtensions:   []string{".go"},
		Markers:          []string{source.GoModFile},
		MetaDataType:     MetaDataType,
		ReservedPrefixes: []string{ReservedPrefix},
	}
}

// Load parses every Go file under root and builds its universe.
func (l *GoLoader) Load(ctx context.Context, root string, cfg loader.Config) (*model.Universe, error) {
	tree := source.Open(root)

	mods, err := tree.LoadModules(ctx, cfg.Excluded())
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}

	files, err := tree.Walk(ctx, source.Options{
		Extensions: []string{".go"},
		Exclude:    cfg.Excluded(),
		Skip: func(name string) bool {
			return !cfg.IncludeTests && strings.HasSuffix(name, "_test.go")
		},
	})
	if err != nil {
		return nil, err
	}

	b := &builder{
		u:    model.NewUniverse(),
		fset: token.NewFileSet(),
		log:  cfg.Log(),
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := tree.Read(ctx, f)
		if err != nil {
			return nil, err
		}
		file, err := parser.ParseFile(b.fset, f.Path, data, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Path, err)
		}
		if err := b.addFile(file, mods.ImportPath(f.Dir())); err != nil {
			return nil, err
		}
	}

	b.checkTargets()
	for _, t := range b.u.Types() {
		if !t.Declared {
			b.log.Debug("annotation type not declared in tree", zap.String("type", t.QualifiedName()))
		}
	}
	b.log.Debug("loaded go sources", zap.String("root", root), zap.Int("files", len(files)))
	return b.u, nil
}
