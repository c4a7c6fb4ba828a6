// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package match

import "strings"

// Property is a single metadata property: a name with an optional value.
type Property struct {
	Name     string
	Value    string
	HasValue bool
}

func (p Property) String() string {
	if !p.HasValue {
		return p.Name
	}
	return p.Name + propertyValueSeparator + p.Value
}

// Descriptor is a discovered metadata instance.
type Descriptor struct {
	// Kind is the free-form category tag. Never nil, possibly "".
	Kind string

	// Properties keeps the declared order, duplicates included.
	Properties []Property
}

// NewDescriptor builds a descriptor from raw "name" / "name=value" strings.
func NewDescriptor(kind string, properties []string) *Descriptor {
	d := &Descriptor{Kind: kind, Properties: make([]Property, 0, len(properties))}
	for _, raw := range properties {
		d.Properties = append(d.Properties, Property(ParsePredicate(raw)))
	}
	return d
}

// PropertyMap returns the properties keyed by name. When a name repeats,
// the last occurrence wins.
func (d *Descriptor) PropertyMap() map[string]Property {
	m := make(map[string]Property, len(d.Properties))
	for _, p := range d.Properties {
		m[p.Name] = p
	}
	return m
}

func (d *Descriptor) String() string {
	var b strings.Builder
	b.WriteString(d.Kind)
	for _, p := range d.Properties {
		b.WriteString("[")
		b.WriteString(p.String())
		b.WriteString("]")
	}
	return b.String()
}
