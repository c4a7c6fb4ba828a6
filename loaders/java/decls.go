// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package java

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/albertocavalcante/metamatch/internal/names"
	"github.com/albertocavalcante/metamatch/model"
)

type builder struct {
	u   *model.Universe
	idx *index
}

// file is the state of one compilation unit being added.
type file struct {
	*builder
	unit  *unit
	scope *scope
}

func (b *builder) addUnit(u *unit) {
	f := &file{builder: b, unit: u, scope: newScope(u, b.idx)}
	f.addMembers(u.root, u.pkg, "")
}

func (f *file) pos(n *sitter.Node) model.Position {
	return model.Position{File: f.unit.path, Line: int(n.StartPoint().Row) + 1}
}

func (f *file) text(n *sitter.Node) string {
	return n.Content(f.unit.src)
}

// addMembers adds the declarations found directly under parent. outer is
// the qualified name of the enclosing type, or the package at top level;
// enclosing is empty at top level.
func (f *file) addMembers(parent *sitter.Node, outer, enclosing string) {
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		switch child.Type() {
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			f.addType(child, outer, enclosing)
		case "method_declaration", "annotation_type_element_declaration":
			f.addNamed(child, enclosing, KindMethod)
		case "constructor_declaration", "compact_constructor_declaration":
			f.addNamed(child, enclosing, KindConstructor)
		case "field_declaration", "constant_declaration":
			f.addFields(child, enclosing)
		case "enum_constant":
			f.addNamed(child, enclosing, KindEnumConstant)
		case "enum_body", "enum_body_declarations":
			f.addMembers(child, outer, enclosing)
		}
	}
}

func (f *file) addType(n *sitter.Node, outer, enclosing string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	kind := typeDecls[n.Type()]
	qualified := names.Qualify(outer, f.text(nameNode))

	decl := &model.Decl{Name: qualified, Kind: kind, Pos: f.pos(nameNode)}
	if kind == KindAnnotationType {
		decl.Type = f.u.DeclareType(qualified, decl.Pos, f.elementDefaults(n))
	}
	f.annotate(decl, n, enclosing)
	f.u.Add(decl)

	if body := n.ChildByFieldName("body"); body != nil {
		f.addMembers(body, qualified, qualified)
	}
}

// addNamed adds a member declaration that has a name field.
func (f *file) addNamed(n *sitter.Node, enclosing, kind string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	decl := &model.Decl{
		Name: names.Qualify(enclosing, f.text(nameNode)),
		Kind: kind,
		Pos:  f.pos(nameNode),
	}
	f.annotate(decl, n, enclosing)
	f.u.Add(decl)
}

// addFields adds one declaration per declarator. The annotations written
// on the declaration apply to each of them.
func (f *file) addFields(n *sitter.Node, enclosing string) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		d := n.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		nameNode := d.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		decl := &model.Decl{
			Name: names.Qualify(enclosing, f.text(nameNode)),
			Kind: KindField,
			Pos:  f.pos(nameNode),
		}
		f.annotate(decl, n, enclosing)
		f.u.Add(decl)
	}
}

// annotate attaches the annotations in the modifiers of n to decl.
func (f *file) annotate(decl *model.Decl, n *sitter.Node, enclosing string) {
	mods := modifiers(n)
	if mods == nil {
		return
	}
	for i := 0; i < int(mods.NamedChildCount()); i++ {
		a := mods.NamedChild(i)
		if a.Type() != "annotation" && a.Type() != "marker_annotation" {
			continue
		}
		nameNode := a.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		typ := f.u.Type(f.scope.resolve(f.text(nameNode), enclosing))
		attrs := f.arguments(a.ChildByFieldName("arguments"))
		decl.Annotate(model.NewInstance(typ, attrs, f.pos(a)))
	}
}

// elementDefaults collects the default values of an @interface's elements.
func (f *file) elementDefaults(n *sitter.Node) model.Attributes {
	defaults := make(model.Attributes)
	body := n.ChildByFieldName("body")
	if body == nil {
		return defaults
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		el := body.NamedChild(i)
		if el.Type() != "annotation_type_element_declaration" {
			continue
		}
		nameNode := el.ChildByFieldName("name")
		value := el.ChildByFieldName("value")
		if nameNode == nil || value == nil {
			continue
		}
		defaults[f.text(nameNode)] = f.value(value)
	}
	return defaults
}

func modifiers(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "modifiers" {
			return c
		}
	}
	return nil
}
