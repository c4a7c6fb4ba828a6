// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package graph

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/metamatch/model"
)

// Document is the content of one graph file.
type Document struct {
	Types        []TypeSpec `yaml:"types"`
	Declarations []DeclSpec `yaml:"declarations"`
}

// TypeSpec declares an annotation type.
type TypeSpec struct {
	Name        string           `yaml:"name"`
	Defaults    AttributeMap     `yaml:"defaults,omitempty"`
	Annotations []AnnotationSpec `yaml:"annotations,omitempty"`

	// Line is the line of the entry in its file.
	Line int `yaml:"-"`
}

// DeclSpec declares an annotated element.
type DeclSpec struct {
	Name        string           `yaml:"name"`
	Kind        string           `yaml:"kind,omitempty"`
	Annotations []AnnotationSpec `yaml:"annotations,omitempty"`

	Line int `yaml:"-"`
}

// AnnotationSpec is an annotation use.
type AnnotationSpec struct {
	Type       string       `yaml:"type"`
	Attributes AttributeMap `yaml:"attributes,omitempty"`

	Line int `yaml:"-"`
}

// AttributeMap holds attribute values. Scalars decode to strings and
// sequences of scalars to []string.
type AttributeMap model.Attributes

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TypeSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain TypeSpec
	if err := value.Decode((*plain)(t)); err != nil {
		return err
	}
	t.Line = value.Line
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DeclSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain DeclSpec
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Line = value.Line
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AnnotationSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain AnnotationSpec
	if err := value.Decode((*plain)(a)); err != nil {
		return err
	}
	a.Line = value.Line
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *AttributeMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", value.Line)
	}
	out := make(AttributeMap, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			if val.Tag == "!!null" {
				out[key.Value] = ""
				continue
			}
			out[key.Value] = val.Value
		case yaml.SequenceNode:
			list := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: attribute %s: list items must be scalars", item.Line, key.Value)
				}
				list = append(list, item.Value)
			}
			out[key.Value] = list
		default:
			return fmt.Errorf("line %d: attribute %s must be a scalar or a list", val.Line, key.Value)
		}
	}
	*m = out
	return nil
}
