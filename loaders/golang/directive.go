// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"unicode"

	"github.com/albertocavalcante/metamatch/internal/names"
	"github.com/albertocavalcante/metamatch/model"
)

const directivePrefix = "//@"

// valueAttribute receives a single positional value, as in //@Name{"x"}.
const valueAttribute = "value"

// DirectiveError reports a malformed annotation directive.
type DirectiveError struct {
	Pos  model.Position
	Text string
	Err  error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: invalid annotation %q: %v", e.Pos, e.Text, e.Err)
}

func (e *DirectiveError) Unwrap() error { return e.Err }

// directive is a parsed annotation directive.
type directive struct {
	typeName string
	attrs    model.Attributes
}

// directiveText returns the expression of a "//@Expr" comment.
func directiveText(comment string) (string, bool) {
	text, ok := strings.CutPrefix(comment, directivePrefix)
	if !ok || text == "" {
		return "", false
	}
	r := rune(text[0])
	if r != '_' && !unicode.IsLetter(r) {
		return "", false
	}
	return strings.TrimSpace(text), true
}

func parseDirective(scope *fileScope, text string) (*directive, error) {
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return nil, err
	}

	typeExpr := expr
	var elts []ast.Expr
	if lit, ok := expr.(*ast.CompositeLit); ok {
		typeExpr, elts = lit.Type, lit.Elts
	}

	typeName, ok := scope.qualify(typeExpr)
	if !ok {
		return nil, fmt.Errorf("annotation must name a type, got %s", types.ExprString(typeExpr))
	}

	attrs, err := attributes(elts)
	if err != nil {
		return nil, err
	}
	return &directive{typeName: typeName, attrs: attrs}, nil
}

func attributes(elts []ast.Expr) (model.Attributes, error) {
	attrs := make(model.Attributes, len(elts))
	for _, elt := range elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			if len(elts) != 1 {
				return nil, errors.New("positional values are only allowed alone")
			}
			v, err := value(elt)
			if err != nil {
				return nil, err
			}
			attrs[valueAttribute] = v
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("attribute name must be an identifier, got %s", types.ExprString(kv.Key))
		}
		v, err := value(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key.Name, err)
		}
		attrs[names.Decapitalize(key.Name)] = v
	}
	return attrs, nil
}

// value converts an attribute expression to a string or []string.
func value(expr ast.Expr) (any, error) {
	if lit, ok := expr.(*ast.CompositeLit); ok {
		list := make([]string, 0, len(lit.Elts))
		for _, elt := range lit.Elts {
			s, err := scalar(elt)
			if err != nil {
				return nil, err
			}
			list = append(list, s)
		}
		return list, nil
	}
	return scalar(expr)
}

func scalar(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind == token.STRING {
			return strconv.Unquote(e.Value)
		}
		return e.Value, nil
	case *ast.Ident:
		return e.Name, nil
	case *ast.SelectorExpr, *ast.UnaryExpr:
		return types.ExprString(e), nil
	}
	return "", fmt.Errorf("unsupported value %s", types.ExprString(expr))
}
