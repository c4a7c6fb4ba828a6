// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/albertocavalcante/metamatch/internal/testutil"
	"github.com/albertocavalcante/metamatch/loader"
	"github.com/albertocavalcante/metamatch/match"
	"github.com/albertocavalcante/metamatch/model"
)

const app = `
-- go.mod --
module example.com/app

go 1.22
-- kinds/kinds.go --
package kinds

import (
	_ "github.com/albertocavalcante/metamatch/annotation"
)

// HTTPService marks HTTP services.
//
//@annotation.MetaData{Kind: "service", Properties: []string{"transport=http", "public"}}
type HTTPService struct{}

//@annotation.MetaData{Kind: "handler"}
type Handler struct {
	Path string ` + "`default:\"/\"`" + `
}

//@HTTPService
type Internal struct{}
-- svc/greeter.go --
package svc

import (
	k "example.com/app/kinds"
)

// Greeter says hello.
//
//@k.HTTPService
type Greeter struct {
	//@k.Handler{Path: "/name"}
	Name string
}

//@k.Handler
func Hello() {}

//@k.Internal
func (g *Greeter) Bye() {}

func Plain() {}
-- svc/greeter_test.go --
package svc

//@k.HTTPService
type fake struct{}
`

func load(t *testing.T, archive string, cfg loader.Config) *model.Universe {
	t.Helper()
	u, err := NewLoader().Load(context.Background(), testutil.Tree(t, archive), cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return u
}

func decl(t *testing.T, u *model.Universe, name string) *model.Decl {
	t.Helper()
	for _, d := range u.Decls() {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("declaration %s not found", name)
	return nil
}

func TestLoad_Decls(t *testing.T) {
	u := load(t, app, loader.Config{})

	type entry struct {
		Name, Kind, Pos string
	}
	var got []entry
	for _, d := range u.Decls() {
		got = append(got, entry{d.Name, d.Kind, d.Pos.String()})
	}
	want := []entry{
		{"example.com/app/kinds.HTTPService", "type", "kinds/kinds.go:10"},
		{"example.com/app/kinds.Handler", "type", "kinds/kinds.go:13"},
		{"example.com/app/kinds.Handler.Path", "field", "kinds/kinds.go:14"},
		{"example.com/app/kinds.Internal", "type", "kinds/kinds.go:18"},
		{"example.com/app/svc.Greeter", "type", "svc/greeter.go:10"},
		{"example.com/app/svc.Greeter.Name", "field", "svc/greeter.go:12"},
		{"example.com/app/svc.Hello", "func", "svc/greeter.go:16"},
		{"example.com/app/svc.Greeter.Bye", "method", "svc/greeter.go:19"},
		{"example.com/app/svc.Plain", "func", "svc/greeter.go:21"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decls mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_IncludeTests(t *testing.T) {
	u := load(t, app, loader.Config{IncludeTests: true})
	decl(t, u, "example.com/app/svc.fake")
}

func TestLoad_Matching(t *testing.T) {
	u := load(t, app, loader.Config{})
	m := match.NewMatcher(match.Config{
		MetaDataType:     MetaDataType,
		ReservedPrefixes: []string{ReservedPrefix},
	})

	tests := []struct {
		decl  string
		query string
		want  bool
	}{
		{"example.com/app/svc.Greeter", "service", true},
		{"example.com/app/svc.Greeter", "service[transport=http][public]", true},
		{"example.com/app/svc.Greeter", "service[transport=grpc]", false},
		{"example.com/app/svc.Greeter", "handler", false},
		{"example.com/app/svc.Greeter.Bye", "service[public]", true},
		{"example.com/app/svc.Greeter.Name", "handler", true},
		{"example.com/app/svc.Hello", "*", true},
		{"example.com/app/svc.Plain", "*", false},
		{"example.com/app/svc.Plain", match.DontMatch, true},
	}
	for _, tt := range tests {
		t.Run(tt.decl+"/"+tt.query, func(t *testing.T) {
			if got := m.Matches(decl(t, u, tt.decl), tt.query); got != tt.want {
				t.Errorf("Matches(%s, %q) = %v, want %v", tt.decl, tt.query, got, tt.want)
			}
		})
	}
}

func TestLoad_Attributes(t *testing.T) {
	u := load(t, app, loader.Config{})

	handler, ok := u.Lookup("example.com/app/kinds.Handler")
	if !ok || !handler.Declared {
		t.Fatal("Handler type not declared")
	}
	if diff := cmp.Diff(model.Attributes{"path": "/"}, handler.Defaults); diff != "" {
		t.Errorf("Handler defaults mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		decl string
		want model.Attributes
	}{
		{"example.com/app/svc.Greeter.Name", model.Attributes{"path": "/name"}},
		{"example.com/app/svc.Hello", model.Attributes{"path": "/"}},
	}
	for _, tt := range tests {
		anns := decl(t, u, tt.decl).Annotations()
		if len(anns) != 1 {
			t.Fatalf("%s: got %d annotations, want 1", tt.decl, len(anns))
		}
		if diff := cmp.Diff(tt.want, anns[0].Attributes()); diff != "" {
			t.Errorf("%s attributes mismatch (-want +got):\n%s", tt.decl, diff)
		}
	}
}

func TestLoad_MetaDataDefaults(t *testing.T) {
	// The annotation package lives in the tree, so its defaults apply.
	u := load(t, `
-- go.mod --
module github.com/albertocavalcante/metamatch
-- annotation/annotation.go --
package annotation

type MetaData struct {
	Kind       string   `+"`default:\"\"`"+`
	Properties []string `+"`default:\"\"`"+`
}
-- app/app.go --
package app

import "github.com/albertocavalcante/metamatch/annotation"

//@annotation.MetaData
type Bare struct{}

var _ annotation.MetaData
`, loader.Config{})

	d, ok := match.NewFinder(match.Config{MetaDataType: MetaDataType}).
		Find(decl(t, u, "github.com/albertocavalcante/metamatch/app.Bare"))
	if !ok {
		t.Fatal("Find: no metadata")
	}
	want := &match.Descriptor{Kind: "", Properties: []match.Property{}}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Targets(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	load(t, `
-- go.mod --
module example.com/app
-- a.go --
package app

import _ "github.com/albertocavalcante/metamatch/annotation/meta"

//@meta.Target{Kinds: []string{"func"}}
type OnlyFuncs struct{}

//@OnlyFuncs
func Ok() {}

//@OnlyFuncs
type Wrong struct{}
`, loader.Config{Logger: zap.New(core)})

	entries := logs.FilterMessage("annotation not applicable to declaration kind").All()
	if len(entries) != 1 {
		t.Fatalf("got %d warnings, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["declaration"]; got != "example.com/app.Wrong" {
		t.Errorf("warned about %v, want example.com/app.Wrong", got)
	}
}

func TestLoad_InvalidDirective(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "//@Broken{"},
		{"not a type", "//@pkg.T.Inner"},
		{"mixed values", `//@Pair{"a", B: "b"}`},
		{"unsupported value", `//@Pair{A: func() {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.Tree(t, "-- go.mod --\nmodule example.com/bad\n-- bad.go --\npackage bad\n\n"+tt.src+"\nfunc F() {}\n")
			_, err := NewLoader().Load(context.Background(), root, loader.Config{})
			var de *DirectiveError
			if !errors.As(err, &de) {
				t.Fatalf("Load error = %v, want *DirectiveError", err)
			}
			if de.Pos.String() != "bad.go:3" {
				t.Errorf("error position = %s, want bad.go:3", de.Pos)
			}
		})
	}
}

func TestDirectiveText(t *testing.T) {
	tests := []struct {
		comment string
		want    string
		ok      bool
	}{
		{"//@Marker", "Marker", true},
		{"//@pkg.T{A: 1} ", "pkg.T{A: 1}", true},
		{"// @Marker", "", false},
		{"//@", "", false},
		{"//@ Marker", "", false},
		{"/*@Marker*/", "", false},
		{"//go:generate x", "", false},
	}
	for _, tt := range tests {
		got, ok := directiveText(tt.comment)
		if got != tt.want || ok != tt.ok {
			t.Errorf("directiveText(%q) = %q, %v; want %q, %v", tt.comment, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDirective(t *testing.T) {
	scope := &fileScope{
		importPath: "example.com/app",
		imports:    map[string]string{"ann": "example.com/ann"},
	}

	tests := []struct {
		text      string
		wantType  string
		wantAttrs model.Attributes
	}{
		{"Local", "example.com/app.Local", model.Attributes{}},
		{"ann.T", "example.com/ann.T", model.Attributes{}},
		{"other.T", "other.T", model.Attributes{}},
		{`ann.T{"x"}`, "example.com/ann.T", model.Attributes{"value": "x"}},
		{
			`ann.T{Name: "n", Count: 3, On: true, List: []string{"a", "b"}, Ref: ann.Const}`,
			"example.com/ann.T",
			model.Attributes{"name": "n", "count": "3", "on": "true", "list": []string{"a", "b"}, "ref": "ann.Const"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := parseDirective(scope, tt.text)
			if err != nil {
				t.Fatalf("parseDirective: %v", err)
			}
			if d.typeName != tt.wantType {
				t.Errorf("type = %q, want %q", d.typeName, tt.wantType)
			}
			if diff := cmp.Diff(tt.wantAttrs, d.attrs); diff != "" {
				t.Errorf("attributes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
