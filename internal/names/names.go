// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package names provides qualified-name and attribute-name helpers shared
// by the source backends.
package names

import (
	"strings"
	"unicode"
)

// Decapitalize returns name with the first letter lowercased.
// Fully uppercase names (like "URL") are lowered as a single word.
// Returns empty string for empty input.
func Decapitalize(name string) string {
	if name == "" {
		return ""
	}
	allUpper := true
	for _, r := range name {
		if !unicode.IsUpper(r) && unicode.IsLetter(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return strings.ToLower(name)
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// Qualify joins a package path and a simple name with a dot. An empty
// package yields the bare name.
func Qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// Split splits a qualified name at its last dot following the last slash,
// so that both "example.com/pkg.Name" and "com.example.Name" split into
// package and simple name.
func Split(qualified string) (pkg, name string) {
	start := strings.LastIndexByte(qualified, '/') + 1
	i := strings.LastIndexByte(qualified[start:], '.')
	if i < 0 {
		return "", qualified
	}
	return qualified[:start+i], qualified[start+i+1:]
}

// PackageName guesses the package name of a Go import path: its last
// element, ignoring a major version suffix ("/v2") and a gopkg.in style
// version (".v3"), with dashes removed.
func PackageName(importPath string) string {
	elems := strings.Split(importPath, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	if i := strings.Index(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
