// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"cmp"
	"fmt"
	"slices"
)

// Position is a source location.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	if p.File == "" {
		return "-"
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Type is an annotation type. Types referenced but never declared in the
// loaded sources still exist (Declared is false); they simply carry no
// meta-annotations and no defaults.
type Type struct {
	name        string
	annotations []Annotation

	// Declared reports whether the type's declaration was found.
	Declared bool

	// Pos is the declaration position, if declared.
	Pos Position

	// Defaults holds declared attribute defaults.
	Defaults Attributes
}

// QualifiedName implements AnnotationType.
func (t *Type) QualifiedName() string { return t.name }

// Annotations implements Element.
func (t *Type) Annotations() []Annotation { return t.annotations }

// Annotate appends annotations to the type's declaration.
func (t *Type) Annotate(a ...Annotation) { t.annotations = append(t.annotations, a...) }

// Instance is an annotation attached to a declaration or a type.
type Instance struct {
	typ *Type

	// Explicit holds the attribute values written at the use site.
	Explicit Attributes

	// Pos is where the annotation was written.
	Pos Position
}

// NewInstance returns an annotation of type t.
func NewInstance(t *Type, explicit Attributes, pos Position) *Instance {
	return &Instance{typ: t, Explicit: explicit, Pos: pos}
}

// AnnotationType implements Annotation.
func (i *Instance) AnnotationType() AnnotationType { return i.typ }

// Type returns the concrete annotation type.
func (i *Instance) Type() *Type { return i.typ }

// Attributes implements Annotation. Defaults are resolved on every call
// from the type as it is known now, so annotations created before the
// type's declaration was loaded still see its defaults.
func (i *Instance) Attributes() Attributes { return Merge(i.typ.Defaults, i.Explicit) }

// Decl is a declaration found in the sources: a type, function, method,
// field and so on.
type Decl struct {
	// Name is the qualified name of the declaration.
	Name string

	// Kind is the declaration kind as reported by the backend
	// (e.g. "type", "func", "method", "field", "class").
	Kind string

	// Pos is the declaration position.
	Pos Position

	// Type is set when the declaration also declares a type usable as an
	// annotation type. Annotations are then shared with the type.
	Type *Type

	annotations []Annotation
}

// Annotations implements Element.
func (d *Decl) Annotations() []Annotation {
	if d.Type != nil {
		return d.Type.Annotations()
	}
	return d.annotations
}

// Annotate appends annotations to the declaration.
func (d *Decl) Annotate(a ...Annotation) {
	if d.Type != nil {
		d.Type.Annotate(a...)
		return
	}
	d.annotations = append(d.annotations, a...)
}

// Universe holds every declaration and annotation type loaded from a
// source tree. It is built once by a backend and read-only afterwards.
type Universe struct {
	types map[string]*Type
	decls []*Decl
}

// NewUniverse returns an empty universe.
func NewUniverse() *Universe {
	return &Universe{types: make(map[string]*Type)}
}

// Type returns the annotation type with the given qualified name, creating
// an undeclared placeholder on first reference.
func (u *Universe) Type(name string) *Type {
	if t, ok := u.types[name]; ok {
		return t
	}
	t := &Type{name: name}
	u.types[name] = t
	return t
}

// Lookup returns the type with the given name if it was referenced or
// declared.
func (u *Universe) Lookup(name string) (*Type, bool) {
	t, ok := u.types[name]
	return t, ok
}

// DeclareType marks the named type as declared at pos and returns it.
func (u *Universe) DeclareType(name string, pos Position, defaults Attributes) *Type {
	t := u.Type(name)
	t.Declared = true
	t.Pos = pos
	if len(defaults) > 0 {
		t.Defaults = defaults
	}
	return t
}

// Add records a declaration.
func (u *Universe) Add(d *Decl) {
	u.decls = append(u.decls, d)
}

// Decls returns all declarations ordered by file, then line, then name.
func (u *Universe) Decls() []*Decl {
	out := slices.Clone(u.decls)
	slices.SortStableFunc(out, func(a, b *Decl) int {
		if c := cmp.Compare(a.Pos.File, b.Pos.File); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Pos.Line, b.Pos.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Types returns all known types sorted by qualified name.
func (u *Universe) Types() []*Type {
	out := make([]*Type, 0, len(u.types))
	for _, t := range u.types {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Type) int { return cmp.Compare(a.name, b.name) })
	return out
}
