// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package java loads annotations from Java source trees using the
// tree-sitter Java grammar.
//
// Loading takes two passes. The first indexes every type declared in the
// tree, so that simple annotation names can be resolved against the
// package and on-demand imports. The second records declarations with
// their annotations and declares every @interface as an annotation type,
// taking attribute defaults from its element declarations.
package java

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"go.uber.org/zap"

	"github.com/albertocavalcante/metamatch/internal/source"
	"github.com/albertocavalcante/metamatch/loader"
	"github.com/albertocavalcante/metamatch/model"
)

const (
	// MetaDataType is the default metadata annotation type.
	MetaDataType = "genftw.api.MetaData"

	// ReservedPrefix is the namespace of the JDK meta-annotations.
	ReservedPrefix = "java.lang.annotation."

	// TestSuffixesOption names the comma-separated file name suffixes of
	// test sources, skipped unless tests are included.
	TestSuffixesOption = "java.testSuffixes"

	// DefaultTestSuffixes follows the Maven Surefire and Failsafe naming.
	DefaultTestSuffixes = "Test.java,Tests.java,IT.java"
)

// Declaration kinds reported by this loader.
const (
	KindClass          = "class"
	KindInterface      = "interface"
	KindEnum           = "enum"
	KindRecord         = "record"
	KindAnnotationType = "annotation_type"
	KindMethod         = "method"
	KindConstructor    = "constructor"
	KindField          = "field"
	KindEnumConstant   = "enum_constant"
)

// JavaLoader implements [loader.Loader] for Java sources.
type JavaLoader struct{}

// NewLoader creates a new Java loader.
func NewLoader() *JavaLoader {
	return &JavaLoader{}
}

// Metadata returns information about this loader.
func (l *JavaLoader) Metadata() loader.Metadata {
	return loader.Metadata{
		Name:             "java",
		Description:      "Java sources with annotations",
		FileExtensions:   []string{".java"},
		Markers:          []string{"pom.xml", "build.gradle", "build.gradle.kts"},
		MetaDataType:     MetaDataType,
		ReservedPrefixes: []string{ReservedPrefix},
	}
}

// unit is a parsed compilation unit.
type unit struct {
	path string
	src  []byte
	tree *sitter.Tree
	root *sitter.Node
	pkg  string
}

// closeUnits releases the parse trees of units. Nodes of a closed tree
// must not be used afterwards.
func closeUnits(units []*unit) {
	for _, u := range units {
		u.tree.Close()
		u.root = nil
	}
}

// Load parses every Java file under root and builds its universe.
func (l *JavaLoader) Load(ctx context.Context, root string, cfg loader.Config) (*model.Universe, error) {
	tree := source.Open(root)
	log := cfg.Log()
	testSuffixes := strings.Split(cfg.Option(TestSuffixesOption, DefaultTestSuffixes), ",")

	files, err := tree.Walk(ctx, source.Options{
		Extensions: []string{".java"},
		Exclude:    cfg.Excluded(),
		Skip: func(name string) bool {
			return !cfg.IncludeTests && isTestSource(name, testSuffixes)
		},
	})
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	idx := newIndex()
	units := make([]*unit, 0, len(files))
	defer func() { closeUnits(units) }()
	for _, f := range files {
		src, err := tree.Read(ctx, f)
		if err != nil {
			return nil, err
		}
		t, err := parser.ParseCtx(ctx, nil, src)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Path, err)
		}
		rootNode := t.RootNode()
		if rootNode.HasError() {
			log.Warn("java source has syntax errors", zap.String("file", f.Path))
		}
		u := &unit{path: f.Path, src: src, tree: t, root: rootNode, pkg: packageName(rootNode, src)}
		idx.addUnit(u)
		units = append(units, u)
	}

	b := &builder{u: model.NewUniverse(), idx: idx}
	for _, u := range units {
		b.addUnit(u)
	}

	for _, t := range b.u.Types() {
		if !t.Declared {
			log.Debug("annotation type not declared in tree", zap.String("type", t.QualifiedName()))
		}
	}
	log.Debug("loaded java sources", zap.String("root", root), zap.Int("files", len(files)))
	return b.u, nil
}

func isTestSource(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
