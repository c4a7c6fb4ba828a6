// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/albertocavalcante/metamatch/internal/names"
)

// builtins lists the annotation types of the JDK packages that are commonly
// imported on demand. java.lang members are visible without any import.
var builtins = map[string]bool{
	"java.lang.Override":              true,
	"java.lang.Deprecated":            true,
	"java.lang.SuppressWarnings":      true,
	"java.lang.FunctionalInterface":   true,
	"java.lang.SafeVarargs":           true,
	"java.lang.annotation.Retention":  true,
	"java.lang.annotation.Target":     true,
	"java.lang.annotation.Documented": true,
	"java.lang.annotation.Inherited":  true,
	"java.lang.annotation.Repeatable": true,
	"java.lang.annotation.Native":     true,
}

// typeDecls maps declaration node types to the kinds of types they declare.
var typeDecls = map[string]string{
	"class_declaration":           KindClass,
	"interface_declaration":       KindInterface,
	"enum_declaration":            KindEnum,
	"record_declaration":          KindRecord,
	"annotation_type_declaration": KindAnnotationType,
}

// index holds the qualified names of all types declared in the tree.
type index struct {
	types map[string]bool
}

func newIndex() *index {
	return &index{types: make(map[string]bool)}
}

func (x *index) has(name string) bool { return x.types[name] }

func (x *index) addUnit(u *unit) {
	x.addTypes(u.root, u.src, u.pkg)
}

func (x *index) addTypes(parent *sitter.Node, src []byte, outer string) {
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		if _, ok := typeDecls[child.Type()]; !ok {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		qualified := names.Qualify(outer, nameNode.Content(src))
		x.types[qualified] = true
		if body := typeBody(child); body != nil {
			x.addTypes(body, src, qualified)
		}
	}
}

// typeBody returns the node holding member declarations of a type.
// Enum members after the constants live in enum_body_declarations.
func typeBody(decl *sitter.Node) *sitter.Node {
	body := decl.ChildByFieldName("body")
	if body == nil || body.Type() != "enum_body" {
		return body
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if c := body.NamedChild(i); c.Type() == "enum_body_declarations" {
			return c
		}
	}
	return body
}

func packageName(root *sitter.Node, src []byte) string {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "package_declaration" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			n := child.NamedChild(j)
			if n.Type() == "identifier" || n.Type() == "scoped_identifier" {
				return n.Content(src)
			}
		}
	}
	return ""
}

// scope resolves annotation names within one compilation unit.
type scope struct {
	pkg      string
	single   map[string]string
	onDemand []string
	idx      *index
}

func newScope(u *unit, idx *index) *scope {
	s := &scope{pkg: u.pkg, single: make(map[string]string), idx: idx}
	for i := 0; i < int(u.root.NamedChildCount()); i++ {
		child := u.root.NamedChild(i)
		if child.Type() != "import_declaration" {
			continue
		}
		text := strings.TrimSpace(child.Content(u.src))
		text = strings.TrimSuffix(strings.TrimPrefix(text, "import"), ";")
		fields := strings.Fields(text)
		if len(fields) == 0 || fields[0] == "static" {
			// Static imports bring members, not types.
			continue
		}
		text = strings.Join(fields, "")
		if pkg, ok := strings.CutSuffix(text, ".*"); ok {
			s.onDemand = append(s.onDemand, pkg)
			continue
		}
		_, simple := names.Split(text)
		s.single[simple] = text
	}
	return s
}

// resolve returns the qualified name of an annotation written as name
// inside the type enclosing (empty at top level).
func (s *scope) resolve(name, enclosing string) string {
	first, rest, dotted := strings.Cut(name, ".")
	if !dotted {
		if q, ok := s.lookup(name, enclosing); ok {
			return q
		}
		return names.Qualify(s.pkg, name)
	}
	// Outer.Inner references a nested type of a visible type. Anything
	// else is already fully qualified.
	if q, ok := s.lookup(first, enclosing); ok {
		return q + "." + rest
	}
	return name
}

func (s *scope) lookup(simple, enclosing string) (string, bool) {
	for outer := enclosing; outer != "" && outer != s.pkg; {
		if q := outer + "." + simple; s.idx.has(q) {
			return q, true
		}
		i := strings.LastIndexByte(outer, '.')
		if i < 0 {
			break
		}
		outer = outer[:i]
	}
	if q, ok := s.single[simple]; ok {
		return q, true
	}
	if q := names.Qualify(s.pkg, simple); s.idx.has(q) {
		return q, true
	}
	for _, pkg := range s.onDemand {
		if q := pkg + "." + simple; s.idx.has(q) || builtins[q] {
			return q, true
		}
	}
	if q := "java.lang." + simple; builtins[q] {
		return q, true
	}
	return "", false
}
