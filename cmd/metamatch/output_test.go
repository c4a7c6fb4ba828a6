// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/metamatch/match"
	"github.com/albertocavalcante/metamatch/model"
)

func TestWriteJSON(t *testing.T) {
	results := []result{{
		Decl: &model.Decl{Name: "app.Greeter", Kind: "type", Pos: model.Position{File: "app/greeter.go", Line: 7}},
		Result: match.Result{
			Matched:    true,
			Descriptor: match.NewDescriptor("service", []string{"public", "transport=http", "path="}),
		},
	}}

	var buf bytes.Buffer
	if err := writeJSON(&buf, results); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}

	var got []jsonResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, buf.String())
	}

	want := []jsonResult{{
		File:    "app/greeter.go",
		Line:    7,
		Name:    "app.Greeter",
		Kind:    "type",
		Matched: true,
		Reason:  "match",
		Metadata: &jsonMetadata{
			Kind: "service",
			Properties: []jsonProperty{
				{Name: "public"},
				{Name: "transport", Value: "http", HasValue: true},
				{Name: "path", HasValue: true},
			},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("writeJSON mismatch (-want +got):\n%s", diff)
	}
}
