// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/albertocavalcante/metamatch/match"
)

const noKind = "-"

// writeText prints one tab-separated line per result.
func writeText(w io.Writer, results []result, explain bool) error {
	for _, r := range results {
		kind, desc := noKind, noKind
		if d := r.Result.Descriptor; d != nil {
			kind, desc = d.Kind, d.String()
		}
		line := fmt.Sprintf("%s\t%s\t%s", r.Decl.Pos, r.Decl.Name, kind)
		if explain {
			line += fmt.Sprintf("\t%s\t%s", reason(r.Result), desc)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// reason describes why a result matched or not.
func reason(res match.Result) string {
	switch {
	case res.Matched:
		return "match"
	case res.Descriptor == nil:
		return "no metadata"
	case res.KindMismatch:
		return fmt.Sprintf("kind %q not selected by %q", res.Descriptor.Kind, res.Expression.Kind)
	case res.Failed != nil:
		return fmt.Sprintf("predicate %s failed", res.Failed)
	}
	return "no match"
}

type jsonProperty struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"hasValue"`
}

type jsonMetadata struct {
	Kind       string         `json:"kind"`
	Properties []jsonProperty `json:"properties"`
}

type jsonResult struct {
	File     string        `json:"file"`
	Line     int           `json:"line"`
	Name     string        `json:"name"`
	Kind     string        `json:"declKind,omitempty"`
	Matched  bool          `json:"matched"`
	Reason   string        `json:"reason"`
	Metadata *jsonMetadata `json:"metadata,omitempty"`
}

// writeJSON prints the results as an indented JSON array.
func writeJSON(w io.Writer, results []result) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{
			File:    r.Decl.Pos.File,
			Line:    r.Decl.Pos.Line,
			Name:    r.Decl.Name,
			Kind:    r.Decl.Kind,
			Matched: r.Result.Matched,
			Reason:  reason(r.Result),
		}
		if d := r.Result.Descriptor; d != nil {
			jr.Metadata = &jsonMetadata{Kind: d.Kind, Properties: make([]jsonProperty, 0, len(d.Properties))}
			for _, p := range d.Properties {
				jr.Metadata.Properties = append(jr.Metadata.Properties, jsonProperty{
					Name:     p.Name,
					Value:    p.Value,
					HasValue: p.HasValue,
				})
			}
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
