// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package match

import "strings"

const (
	// DontMatch is the query that matches every element, with or without
	// metadata. It means "no filtering".
	DontMatch = ""

	// AnyKind as the whole kind selector matches every metadata kind.
	AnyKind = "*"

	propertyValueSeparator = "="
)

// Predicate is one bracketed property condition of a query.
type Predicate struct {
	// Name is the required property name. An empty name never matches.
	Name string

	// Value is the required value when HasValue is set.
	Value string

	// HasValue distinguishes "[x=]" (value must be "") from "[x]"
	// (any value, including none).
	HasValue bool
}

// Unsatisfiable reports whether the predicate can never hold.
func (p Predicate) Unsatisfiable() bool { return p.Name == "" }

// Satisfied reports whether the property table satisfies the predicate.
func (p Predicate) Satisfied(props map[string]Property) bool {
	if p.Unsatisfiable() {
		return false
	}
	got, ok := props[p.Name]
	if !ok {
		return false
	}
	if !p.HasValue {
		return true
	}
	return got.HasValue && got.Value == p.Value
}

func (p Predicate) String() string { return "[" + Property(p).String() + "]" }

// Expression is a parsed query.
type Expression struct {
	// Kind is the text before the first '['.
	Kind string

	// Predicates in source order.
	Predicates []Predicate
}

// ParsePredicate splits a bracket body at its first '='. It never fails:
// malformed bodies produce an unsatisfiable predicate.
func ParsePredicate(token string) Predicate {
	name, value, found := strings.Cut(token, propertyValueSeparator)
	return Predicate{Name: name, Value: value, HasValue: found}
}

// ParseExpression splits raw into a kind selector and the predicates of
// every non-nested bracket group that follows it. Text outside groups is
// ignored, and a '[' that is reopened before being closed starts over at
// the inner '['.
func ParseExpression(raw string) Expression {
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		return Expression{Kind: raw}
	}

	expr := Expression{Kind: raw[:start]}
	rest := raw[start:]
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			break
		}
		rest = rest[open+1:]
		end := strings.IndexAny(rest, "[]")
		if end < 0 {
			break
		}
		if rest[end] == '[' {
			rest = rest[end:]
			continue
		}
		expr.Predicates = append(expr.Predicates, ParsePredicate(rest[:end]))
		rest = rest[end+1:]
	}
	return expr
}
