// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the entity graph that metadata discovery walks.
//
// Declarations carry annotations. Each annotation refers to an annotation
// type, and annotation types are themselves annotated, which is what makes
// meta-annotations possible. Source backends (Go, Java, YAML) populate a
// Universe; the match package only consumes the read-only interfaces below.
package model

// Element is anything that carries annotations.
type Element interface {
	// Annotations returns the annotations directly attached to the element,
	// in declaration order.
	Annotations() []Annotation
}

// Annotation is a concrete application of an annotation type.
type Annotation interface {
	// AnnotationType returns the declared type of the annotation.
	AnnotationType() AnnotationType

	// Attributes returns attribute values with defaults already resolved.
	Attributes() Attributes
}

// AnnotationType is the declaration of an annotation. Its own annotations
// are the meta-annotations of every annotation of this type.
type AnnotationType interface {
	Element

	// QualifiedName identifies the type across the whole universe
	// (e.g. "example.com/pkg.Service" or "com.example.Service").
	QualifiedName() string
}

// Attributes maps attribute names to values. Values are either a string or
// a []string.
type Attributes map[string]any

// String returns the named attribute as a string. Missing attributes and
// list values yield "".
func (a Attributes) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Strings returns the named attribute as a list. A single string is treated
// as a one-element list.
func (a Attributes) Strings(name string) []string {
	switch v := a[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// Has reports whether the attribute is present.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Merge returns a new Attributes holding defaults overridden by explicit
// values. Neither input is modified.
func Merge(defaults, explicit Attributes) Attributes {
	out := make(Attributes, len(defaults)+len(explicit))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range explicit {
		out[k] = v
	}
	return out
}
