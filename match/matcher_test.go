// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package match

import (
	"testing"

	"github.com/albertocavalcante/metamatch/model"
)

const (
	testMetaData = "test.MetaData"
	testReserved = "lang.annotation."
)

func testConfig() Config {
	return Config{
		MetaDataType:     testMetaData,
		ReservedPrefixes: []string{testReserved},
	}
}

// annotate attaches an annotation of the named type to target.
func annotate(u *model.Universe, target interface{ Annotate(...model.Annotation) }, typ string, attrs model.Attributes) {
	target.Annotate(model.NewInstance(u.Type(typ), attrs, model.Position{}))
}

// withMetaData returns a declaration carrying metadata directly.
func withMetaData(kind string, props ...string) *model.Decl {
	u := model.NewUniverse()
	d := &model.Decl{Name: "elem"}
	annotate(u, d, testMetaData, model.Attributes{"kind": kind, "properties": props})
	return d
}

func TestMatcher_Matches(t *testing.T) {
	m := NewMatcher(testConfig())

	tests := []struct {
		name  string
		elem  model.Element
		query string
		want  bool
	}{
		{name: "sentinel without metadata", elem: &model.Decl{}, query: DontMatch, want: true},
		{name: "sentinel with metadata", elem: withMetaData("K"), query: DontMatch, want: true},
		{name: "no metadata", elem: &model.Decl{}, query: "*", want: false},
		{name: "no metadata with kind", elem: &model.Decl{}, query: "K", want: false},
		{name: "wildcard kind", elem: withMetaData("Foo"), query: "*", want: true},
		{name: "exact kind", elem: withMetaData("Foo"), query: "Foo", want: true},
		{name: "other kind", elem: withMetaData("Foo"), query: "Bar", want: false},
		{name: "kind is case sensitive", elem: withMetaData("Foo"), query: "foo", want: false},
		{name: "empty kind selector", elem: withMetaData("Foo"), query: "[x]", want: false},
		{name: "empty kind matches empty kind", elem: withMetaData("", "x"), query: "[x]", want: true},
		{name: "presence", elem: withMetaData("K", "x=1"), query: "K[x]", want: true},
		{name: "absence", elem: withMetaData("K", "x=1"), query: "K[y]", want: false},
		{name: "value equal", elem: withMetaData("K", "x=1"), query: "K[x=1]", want: true},
		{name: "value differs", elem: withMetaData("K", "x=1"), query: "K[x=2]", want: false},
		{name: "duplicate last wins", elem: withMetaData("K", "x=1", "x=2"), query: "K[x=2]", want: true},
		{name: "duplicate earlier loses", elem: withMetaData("K", "x=1", "x=2"), query: "K[x=1]", want: false},
		{name: "conjunction holds", elem: withMetaData("K", "x=1", "y"), query: "K[x=1][y]", want: true},
		{name: "conjunction first fails", elem: withMetaData("K", "x=2", "y"), query: "K[x=1][y]", want: false},
		{name: "conjunction second fails", elem: withMetaData("K", "x=1"), query: "K[x=1][y]", want: false},
		{name: "predicate order irrelevant", elem: withMetaData("K", "x=1", "y"), query: "K[y][x=1]", want: true},
		{name: "wildcard with predicates", elem: withMetaData("K", "x=1"), query: "*[x=1]", want: true},
		{name: "absent value never equals empty", elem: withMetaData("K", "x"), query: "K[x=]", want: false},
		{name: "empty value equals empty", elem: withMetaData("K", "x="), query: "K[x=]", want: true},
		{name: "presence accepts absent value", elem: withMetaData("K", "x"), query: "K[x]", want: true},
		{name: "empty group never matches", elem: withMetaData("K", "x"), query: "K[]", want: false},
		{name: "empty name never matches", elem: withMetaData("K", "=v"), query: "K[=v]", want: false},
		{name: "no properties", elem: withMetaData("K"), query: "K", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.elem, tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatcher_Idempotent(t *testing.T) {
	m := NewMatcher(testConfig())
	elem := withMetaData("K", "x=1")

	first := m.Matches(elem, "K[x=1]")
	for i := 0; i < 10; i++ {
		if got := m.Matches(elem, "K[x=1]"); got != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}

func TestMatcher_Explain(t *testing.T) {
	m := NewMatcher(testConfig())
	elem := withMetaData("K", "x=1")

	t.Run("failing predicate", func(t *testing.T) {
		res := m.Explain(elem, "K[x=1][y]")
		if res.Matched {
			t.Fatal("expected no match")
		}
		if res.Failed == nil || res.Failed.Name != "y" {
			t.Errorf("Failed = %v, want [y]", res.Failed)
		}
		if res.Descriptor == nil || res.Descriptor.Kind != "K" {
			t.Errorf("Descriptor = %v, want kind K", res.Descriptor)
		}
	})

	t.Run("kind mismatch", func(t *testing.T) {
		res := m.Explain(elem, "Other[x]")
		if res.Matched || !res.KindMismatch {
			t.Errorf("got %+v, want kind mismatch", res)
		}
		if res.Failed != nil {
			t.Errorf("Failed = %v, want nil", res.Failed)
		}
	})

	t.Run("no metadata", func(t *testing.T) {
		res := m.Explain(&model.Decl{}, "K")
		if res.Matched || res.Descriptor != nil {
			t.Errorf("got %+v, want empty result", res)
		}
	})

	t.Run("sentinel skips discovery", func(t *testing.T) {
		res := m.Explain(elem, DontMatch)
		if !res.Matched || res.Descriptor != nil {
			t.Errorf("got %+v, want match without descriptor", res)
		}
	})
}

func TestMatcher_ThroughMetaAnnotation(t *testing.T) {
	u := model.NewUniverse()
	service := u.DeclareType("app.Service", model.Position{}, nil)
	annotate(u, service, testMetaData, model.Attributes{"kind": "service", "properties": []string{"transport=http"}})

	d := &model.Decl{Name: "app.Greeter"}
	annotate(u, d, "app.Service", nil)

	m := NewMatcher(testConfig())
	if !m.Matches(d, "service[transport=http]") {
		t.Error("expected match through meta-annotation")
	}
	if m.Matches(d, "service[transport=grpc]") {
		t.Error("unexpected match with wrong transport")
	}
}
