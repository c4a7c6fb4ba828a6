// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePredicate(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  Predicate
	}{
		{name: "name only", token: "x", want: Predicate{Name: "x"}},
		{name: "name and value", token: "x=1", want: Predicate{Name: "x", Value: "1", HasValue: true}},
		{name: "empty value", token: "x=", want: Predicate{Name: "x", HasValue: true}},
		{name: "split at first equals", token: "x=a=b", want: Predicate{Name: "x", Value: "a=b", HasValue: true}},
		{name: "empty body", token: "", want: Predicate{}},
		{name: "empty name", token: "=x", want: Predicate{Value: "x", HasValue: true}},
		{name: "no trimming", token: " x = 1 ", want: Predicate{Name: " x ", Value: " 1 ", HasValue: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePredicate(tt.token)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePredicate(%q) mismatch (-want +got):\n%s", tt.token, diff)
			}
		})
	}
}

func TestPredicate_Unsatisfiable(t *testing.T) {
	for _, token := range []string{"", "=x", "="} {
		if !ParsePredicate(token).Unsatisfiable() {
			t.Errorf("ParsePredicate(%q) should be unsatisfiable", token)
		}
	}
	if ParsePredicate("x").Unsatisfiable() {
		t.Error(`ParsePredicate("x") should be satisfiable`)
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Expression
	}{
		{
			name: "kind only",
			raw:  "service",
			want: Expression{Kind: "service"},
		},
		{
			name: "wildcard",
			raw:  "*",
			want: Expression{Kind: "*"},
		},
		{
			name: "kind with predicates",
			raw:  "K[x=1][y]",
			want: Expression{Kind: "K", Predicates: []Predicate{
				{Name: "x", Value: "1", HasValue: true},
				{Name: "y"},
			}},
		},
		{
			name: "empty kind",
			raw:  "[x]",
			want: Expression{Kind: "", Predicates: []Predicate{{Name: "x"}}},
		},
		{
			name: "empty group",
			raw:  "K[]",
			want: Expression{Kind: "K", Predicates: []Predicate{{}}},
		},
		{
			name: "text between groups ignored",
			raw:  "K[a]junk[b]",
			want: Expression{Kind: "K", Predicates: []Predicate{{Name: "a"}, {Name: "b"}}},
		},
		{
			name: "reopened bracket restarts group",
			raw:  "K[a[b]",
			want: Expression{Kind: "K", Predicates: []Predicate{{Name: "b"}}},
		},
		{
			name: "unterminated group dropped",
			raw:  "K[a][b",
			want: Expression{Kind: "K", Predicates: []Predicate{{Name: "a"}}},
		},
		{
			name: "stray closing bracket",
			raw:  "K[a]]x[c=d]",
			want: Expression{Kind: "K", Predicates: []Predicate{
				{Name: "a"},
				{Name: "c", Value: "d", HasValue: true},
			}},
		},
		{
			name: "kind keeps everything verbatim",
			raw:  " odd kind!=] [x]",
			want: Expression{Kind: " odd kind!=] ", Predicates: []Predicate{{Name: "x"}}},
		},
		{
			name: "value may contain equals",
			raw:  "K[url=a=b]",
			want: Expression{Kind: "K", Predicates: []Predicate{{Name: "url", Value: "a=b", HasValue: true}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExpression(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseExpression(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestDescriptor_PropertyMap(t *testing.T) {
	d := NewDescriptor("K", []string{"x=1", "y", "x=2"})

	m := d.PropertyMap()
	if len(m) != 2 {
		t.Fatalf("got %d properties, want 2", len(m))
	}
	if got := m["x"]; !got.HasValue || got.Value != "2" {
		t.Errorf(`m["x"] = %+v, want value "2"`, got)
	}
	if got := m["y"]; got.HasValue {
		t.Errorf(`m["y"] = %+v, want no value`, got)
	}

	// The ordered list keeps duplicates.
	if len(d.Properties) != 3 {
		t.Errorf("got %d ordered properties, want 3", len(d.Properties))
	}
}

func TestDescriptor_String(t *testing.T) {
	d := NewDescriptor("service", []string{"transport=http", "public"})
	if got, want := d.String(), "service[transport=http][public]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
