// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package graph loads annotation graphs described in YAML files.
//
// A graph file lists annotation types, with their defaults and
// meta-annotations, and annotated declarations:
//
//	types:
//	  - name: example.Service
//	    annotations:
//	      - type: metamatch.MetaData
//	        attributes: {kind: service, properties: ["transport=http"]}
//	declarations:
//	  - name: example.Greeter
//	    kind: type
//	    annotations:
//	      - type: example.Service
//
// Types and declarations may be spread over any number of files.
package graph

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/metamatch/internal/source"
	"github.com/albertocavalcante/metamatch/loader"
	"github.com/albertocavalcante/metamatch/model"
)

// MetaDataType is the default metadata annotation type.
const MetaDataType = "metamatch.MetaData"

// KindType is the kind of the declarations created for graph types.
const KindType = "type"

// GraphLoader implements [loader.Loader] for YAML graph files.
type GraphLoader struct{}

// NewLoader creates a new graph loader.
func NewLoader() *GraphLoader {
	return &GraphLoader{}
}

// Metadata returns information about this loader.
func (l *GraphLoader) Metadata() loader.Metadata {
	return loader.Metadata{
		Name:           "graph",
		Description:    "YAML annotation graphs",
		FileExtensions: []string{".yaml", ".yml"},
		MetaDataType:   MetaDataType,
	}
}

// Load reads every graph file under root and builds its universe.
func (l *GraphLoader) Load(ctx context.Context, root string, cfg loader.Config) (*model.Universe, error) {
	tree := source.Open(root)

	files, err := tree.Walk(ctx, source.Options{
		Extensions: []string{".yaml", ".yml"},
		Exclude:    cfg.Excluded(),
		// Dot files hold tool configuration, not graphs.
		Skip: func(name string) bool { return strings.HasPrefix(name, ".") },
	})
	if err != nil {
		return nil, err
	}

	u := model.NewUniverse()
	declared := make(map[string]model.Position)
	for _, f := range files {
		data, err := tree.Read(ctx, f)
		if err != nil {
			return nil, err
		}
		var doc Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Path, err)
		}
		if err := add(u, f.Path, &doc, declared); err != nil {
			return nil, err
		}
	}

	for _, t := range u.Types() {
		if !t.Declared {
			cfg.Log().Debug("annotation type not declared in graph", zap.String("type", t.QualifiedName()))
		}
	}
	cfg.Log().Debug("loaded graph files", zap.String("root", root), zap.Int("files", len(files)))
	return u, nil
}

// Parse builds a universe from a single document. Positions refer to name.
func Parse(name string, data []byte) (*model.Universe, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	u := model.NewUniverse()
	if err := add(u, name, &doc, make(map[string]model.Position)); err != nil {
		return nil, err
	}
	return u, nil
}

func add(u *model.Universe, file string, doc *Document, declared map[string]model.Position) error {
	for _, ts := range doc.Types {
		pos := model.Position{File: file, Line: ts.Line}
		if ts.Name == "" {
			return fmt.Errorf("%s: type without name", pos)
		}
		if prev, ok := declared[ts.Name]; ok {
			return fmt.Errorf("%s: type %s already declared at %s", pos, ts.Name, prev)
		}
		declared[ts.Name] = pos

		t := u.DeclareType(ts.Name, pos, model.Attributes(ts.Defaults))
		d := &model.Decl{Name: ts.Name, Kind: KindType, Pos: pos, Type: t}
		if err := annotate(u, file, d, ts.Annotations); err != nil {
			return err
		}
		u.Add(d)
	}

	for _, ds := range doc.Declarations {
		pos := model.Position{File: file, Line: ds.Line}
		if ds.Name == "" {
			return fmt.Errorf("%s: declaration without name", pos)
		}
		d := &model.Decl{Name: ds.Name, Kind: ds.Kind, Pos: pos}
		if err := annotate(u, file, d, ds.Annotations); err != nil {
			return err
		}
		u.Add(d)
	}
	return nil
}

func annotate(u *model.Universe, file string, d *model.Decl, specs []AnnotationSpec) error {
	for _, as := range specs {
		pos := model.Position{File: file, Line: as.Line}
		if as.Type == "" {
			return fmt.Errorf("%s: annotation of %s without type", pos, d.Name)
		}
		attrs := model.Attributes(as.Attributes)
		if attrs == nil {
			attrs = model.Attributes{}
		}
		d.Annotate(model.NewInstance(u.Type(as.Type), attrs, pos))
	}
	return nil
}
