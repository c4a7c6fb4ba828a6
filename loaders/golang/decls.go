// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/albertocavalcante/metamatch/internal/names"
	"github.com/albertocavalcante/metamatch/model"
)

const defaultTag = "default"

// builder accumulates declarations of all files into one universe.
type builder struct {
	u    *model.Universe
	fset *token.FileSet
	log  *zap.Logger
	decl []*model.Decl
}

// fileScope resolves directive type names within one file.
type fileScope struct {
	importPath string
	// imports maps qualifiers to import paths.
	imports map[string]string
}

func newFileScope(file *ast.File, importPath string) *fileScope {
	s := &fileScope{importPath: importPath, imports: make(map[string]string)}
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		if spec.Name != nil && spec.Name.Name != "_" && spec.Name.Name != "." {
			s.imports[spec.Name.Name] = path
			continue
		}
		// Blank imports count too, so that packages referenced only from
		// directives can be imported for their side effect.
		if _, ok := s.imports[names.PackageName(path)]; !ok {
			s.imports[names.PackageName(path)] = path
		}
	}
	return s
}

// qualify resolves a directive type expression to a qualified name.
func (s *fileScope) qualify(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		return names.Qualify(s.importPath, e.Name), true
	case *ast.SelectorExpr:
		pkg, ok := e.X.(*ast.Ident)
		if !ok {
			return "", false
		}
		path, ok := s.imports[pkg.Name]
		if !ok {
			path = pkg.Name
		}
		return names.Qualify(path, e.Sel.Name), true
	}
	return "", false
}

func (b *builder) pos(p token.Pos) model.Position {
	position := b.fset.Position(p)
	return model.Position{File: position.Filename, Line: position.Line}
}

func (b *builder) addFile(file *ast.File, importPath string) error {
	scope := newFileScope(file, importPath)

	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			if err := b.addGenDecl(scope, d); err != nil {
				return err
			}
		case *ast.FuncDecl:
			kind, name := "func", d.Name.Name
			if d.Recv != nil && len(d.Recv.List) > 0 {
				kind, name = "method", receiverName(d.Recv.List[0].Type)+"."+name
			}
			decl := &model.Decl{
				Name: names.Qualify(importPath, name),
				Kind: kind,
				Pos:  b.pos(d.Name.Pos()),
			}
			if err := b.annotate(scope, decl, d.Doc); err != nil {
				return err
			}
			b.add(decl)
		}
	}
	return nil
}

func (b *builder) addGenDecl(scope *fileScope, gd *ast.GenDecl) error {
	// A group's doc comment belongs to its only spec.
	groupDoc := gd.Doc
	if gd.Lparen.IsValid() && len(gd.Specs) > 1 {
		groupDoc = nil
	}

	for _, spec := range gd.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			if err := b.addType(scope, s, docOf(s.Doc, groupDoc)); err != nil {
				return err
			}
		case *ast.ValueSpec:
			kind := "var"
			if gd.Tok == token.CONST {
				kind = "const"
			}
			doc := docOf(s.Doc, groupDoc)
			for _, n := range s.Names {
				decl := &model.Decl{
					Name: names.Qualify(scope.importPath, n.Name),
					Kind: kind,
					Pos:  b.pos(n.Pos()),
				}
				if err := b.annotate(scope, decl, doc); err != nil {
					return err
				}
				b.add(decl)
			}
		}
	}
	return nil
}

func (b *builder) addType(scope *fileScope, ts *ast.TypeSpec, doc *ast.CommentGroup) error {
	qualified := names.Qualify(scope.importPath, ts.Name.Name)
	st, _ := ts.Type.(*ast.StructType)

	var defaults model.Attributes
	if st != nil {
		defaults = attributeDefaults(st)
	}
	typ := b.u.DeclareType(qualified, b.pos(ts.Name.Pos()), defaults)

	decl := &model.Decl{Name: qualified, Kind: "type", Pos: typ.Pos, Type: typ}
	if err := b.annotate(scope, decl, doc); err != nil {
		return err
	}
	b.add(decl)

	if st == nil || st.Fields == nil {
		return nil
	}
	for _, field := range st.Fields.List {
		fieldNames := field.Names
		if len(fieldNames) == 0 {
			// Embedded field: named after its type.
			fieldNames = []*ast.Ident{{Name: embeddedName(field.Type), NamePos: field.Type.Pos()}}
		}
		for _, n := range fieldNames {
			fd := &model.Decl{
				Name: qualified + "." + n.Name,
				Kind: "field",
				Pos:  b.pos(n.Pos()),
			}
			if err := b.annotate(scope, fd, field.Doc); err != nil {
				return err
			}
			b.add(fd)
		}
	}
	return nil
}

func (b *builder) add(d *model.Decl) {
	b.u.Add(d)
	b.decl = append(b.decl, d)
}

// annotate attaches every directive in doc to decl.
func (b *builder) annotate(scope *fileScope, decl *model.Decl, doc *ast.CommentGroup) error {
	if doc == nil {
		return nil
	}
	for _, c := range doc.List {
		text, ok := directiveText(c.Text)
		if !ok {
			continue
		}
		d, err := parseDirective(scope, text)
		if err != nil {
			return &DirectiveError{Pos: b.pos(c.Slash), Text: text, Err: err}
		}
		decl.Annotate(model.NewInstance(b.u.Type(d.typeName), d.attrs, b.pos(c.Slash)))
	}
	return nil
}

// checkTargets warns about annotations used on declaration kinds their
// type's meta.Target does not list.
func (b *builder) checkTargets() {
	for _, d := range b.decl {
		for _, a := range d.Annotations() {
			kinds := targetKinds(a.AnnotationType())
			if kinds != nil && !slices.Contains(kinds, d.Kind) {
				b.log.Warn("annotation not applicable to declaration kind",
					zap.String("annotation", a.AnnotationType().QualifiedName()),
					zap.String("declaration", d.Name),
					zap.String("kind", d.Kind),
					zap.Strings("targets", kinds))
			}
		}
	}
}

func targetKinds(t model.AnnotationType) []string {
	for _, a := range t.Annotations() {
		if a.AnnotationType().QualifiedName() == TargetType {
			return a.Attributes().Strings("kinds")
		}
	}
	return nil
}

// attributeDefaults declares one attribute per struct field, using the
// field's default tag or its zero value.
func attributeDefaults(st *ast.StructType) model.Attributes {
	attrs := make(model.Attributes)
	if st.Fields == nil {
		return attrs
	}
	for _, field := range st.Fields.List {
		var tag string
		var tagged bool
		if field.Tag != nil {
			if raw, err := strconv.Unquote(field.Tag.Value); err == nil {
				tag, tagged = reflect.StructTag(raw).Lookup(defaultTag)
			}
		}
		_, isList := field.Type.(*ast.ArrayType)
		for _, n := range field.Names {
			name := names.Decapitalize(n.Name)
			switch {
			case isList:
				attrs[name] = splitList(tag)
			case tagged:
				attrs[name] = tag
			case isString(field.Type):
				attrs[name] = ""
			}
		}
	}
	return attrs
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func isString(expr ast.Expr) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == "string"
}

func docOf(own, group *ast.CommentGroup) *ast.CommentGroup {
	if own != nil {
		return own
	}
	return group
}

func receiverName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return receiverName(e.X)
	case *ast.IndexExpr:
		return receiverName(e.X)
	case *ast.IndexListExpr:
		return receiverName(e.X)
	case *ast.Ident:
		return e.Name
	}
	return types.ExprString(expr)
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	}
	return types.ExprString(expr)
}
