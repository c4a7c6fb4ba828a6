// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package match

import (
	"strings"

	"go.uber.org/zap"

	"github.com/albertocavalcante/metamatch/model"
)

// Attribute names read from the metadata annotation.
const (
	KindAttribute       = "kind"
	PropertiesAttribute = "properties"
)

// DefaultMaxDepth bounds how many annotation types deep discovery descends.
const DefaultMaxDepth = 64

// Config configures metadata discovery.
type Config struct {
	// MetaDataType is the qualified name of the metadata annotation type.
	MetaDataType string

	// ReservedPrefixes lists qualified-name prefixes of platform annotation
	// types that are never descended into.
	ReservedPrefixes []string

	// MaxDepth bounds the descent. Zero means DefaultMaxDepth.
	MaxDepth int

	// Logger receives diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// Finder discovers metadata descriptors. It is immutable and safe for
// concurrent use.
type Finder struct {
	metaDataType string
	reserved     []string
	maxDepth     int
	logger       *zap.Logger
}

// NewFinder returns a Finder for cfg.
func NewFinder(cfg Config) *Finder {
	f := &Finder{
		metaDataType: cfg.MetaDataType,
		reserved:     append([]string(nil), cfg.ReservedPrefixes...),
		maxDepth:     cfg.MaxDepth,
		logger:       cfg.Logger,
	}
	if f.maxDepth <= 0 {
		f.maxDepth = DefaultMaxDepth
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// search is the per-call state of one Find.
type search struct {
	*Finder
	visited map[string]bool
}

// Find returns the first metadata descriptor reachable from elem, searching
// its annotations in order and descending depth-first into each
// annotation type's own annotations.
func (f *Finder) Find(elem model.Element) (*Descriptor, bool) {
	if elem == nil {
		return nil, false
	}
	s := &search{Finder: f, visited: make(map[string]bool)}
	a := s.find(elem, 0)
	if a == nil {
		return nil, false
	}
	attrs := a.Attributes()
	return NewDescriptor(attrs.String(KindAttribute), attrs.Strings(PropertiesAttribute)), true
}

func (s *search) find(elem model.Element, depth int) model.Annotation {
	for _, a := range elem.Annotations() {
		typ := a.AnnotationType()
		name := typ.QualifiedName()

		if name == s.metaDataType {
			return a
		}
		if s.isReserved(name) {
			continue
		}
		if s.visited[name] {
			s.logger.Debug("annotation type already visited", zap.String("type", name))
			continue
		}
		// A type cut off by the budget stays unvisited so that a shorter
		// path can still descend into it.
		if depth >= s.maxDepth {
			s.logger.Debug("metadata discovery depth budget exceeded",
				zap.String("type", name), zap.Int("maxDepth", s.maxDepth))
			continue
		}
		s.visited[name] = true

		if found := s.find(typ, depth+1); found != nil {
			return found
		}
	}
	return nil
}

func (f *Finder) isReserved(name string) bool {
	for _, p := range f.reserved {
		if p != "" && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
