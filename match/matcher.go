// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package match decides whether the metadata attached to an element
// satisfies a query.
//
// Metadata is a designated annotation type carrying a kind string and a list
// of "name" or "name=value" properties. It may be attached directly to an
// element or reached through meta-annotations: annotations on the
// declarations of the element's annotation types, recursively.
//
// Queries have the form
//
//	kind[name][name=value]...
//
// where kind "*" matches any kind, "[name]" requires the property to be
// present, and "[name=value]" requires it to have exactly that value. The
// empty query (DontMatch) matches everything.
package match

import "github.com/albertocavalcante/metamatch/model"

// Matcher evaluates queries against elements.
type Matcher struct {
	finder *Finder
}

// NewMatcher returns a Matcher using a Finder built from cfg.
func NewMatcher(cfg Config) *Matcher {
	return &Matcher{finder: NewFinder(cfg)}
}

// Finder returns the matcher's metadata finder.
func (m *Matcher) Finder() *Finder { return m.finder }

// Result describes one evaluation.
type Result struct {
	// Matched is the outcome.
	Matched bool

	// Descriptor is the discovered metadata, nil when none was found or the
	// query was DontMatch.
	Descriptor *Descriptor

	// Expression is the parsed query. Zero for DontMatch or when no
	// metadata was found.
	Expression Expression

	// Failed is the first predicate that did not hold, if the failure was
	// caused by a predicate.
	Failed *Predicate

	// KindMismatch is set when the kind selector rejected the descriptor.
	KindMismatch bool
}

// Matches reports whether elem's metadata satisfies query.
func (m *Matcher) Matches(elem model.Element, query string) bool {
	return m.Explain(elem, query).Matched
}

// Explain evaluates query against elem and reports why it matched or not.
func (m *Matcher) Explain(elem model.Element, query string) Result {
	if query == DontMatch {
		return Result{Matched: true}
	}

	d, ok := m.finder.Find(elem)
	if !ok {
		return Result{}
	}

	res := Result{Descriptor: d, Expression: ParseExpression(query)}
	if res.Expression.Kind != AnyKind && res.Expression.Kind != d.Kind {
		res.KindMismatch = true
		return res
	}

	props := d.PropertyMap()
	for i := range res.Expression.Predicates {
		p := res.Expression.Predicates[i]
		if !p.Satisfied(props) {
			res.Failed = &p
			return res
		}
	}

	res.Matched = true
	return res
}
