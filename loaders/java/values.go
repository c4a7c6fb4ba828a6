// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package java

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/albertocavalcante/metamatch/model"
)

// valueElement receives the single unnamed argument, as in @Name("x").
const valueElement = "value"

// arguments converts an annotation_argument_list to attributes.
func (f *file) arguments(args *sitter.Node) model.Attributes {
	attrs := make(model.Attributes)
	if args == nil {
		return attrs
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "line_comment", "block_comment":
		case "element_value_pair":
			key := arg.ChildByFieldName("key")
			value := arg.ChildByFieldName("value")
			if key != nil && value != nil {
				attrs[f.text(key)] = f.value(value)
			}
		default:
			attrs[valueElement] = f.value(arg)
		}
	}
	return attrs
}

// value converts an element value to a string or, for array
// initializers, a []string.
func (f *file) value(n *sitter.Node) any {
	if n.Type() != "element_value_array_initializer" {
		return f.scalar(n)
	}
	list := make([]string, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		el := n.NamedChild(i)
		if el.Type() == "line_comment" || el.Type() == "block_comment" {
			continue
		}
		list = append(list, f.scalar(el))
	}
	return list
}

func (f *file) scalar(n *sitter.Node) string {
	text := f.text(n)
	if n.Type() != "string_literal" {
		return text
	}
	if s, err := strconv.Unquote(text); err == nil {
		return s
	}
	return strings.Trim(text, `"`)
}
