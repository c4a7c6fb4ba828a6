// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config reads the optional .metamatch.yaml file of a source tree.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the root of a tree.
const FileName = ".metamatch.yaml"

// File is the content of a config file. Zero values mean "not set".
type File struct {
	// Lang selects the backend (go, java, graph).
	Lang string `yaml:"lang,omitempty"`

	// MetaData is the qualified name of the metadata annotation type.
	MetaData string `yaml:"metadata,omitempty"`

	// Reserved lists reserved annotation namespace prefixes.
	Reserved []string `yaml:"reserved,omitempty"`

	// MaxDepth is the discovery depth budget.
	MaxDepth int `yaml:"maxDepth,omitempty"`

	// IncludeTests includes test sources.
	IncludeTests bool `yaml:"includeTests,omitempty"`

	// Exclude lists directory names skipped while walking.
	Exclude []string `yaml:"exclude,omitempty"`

	// Options holds backend-specific options.
	Options map[string]string `yaml:"options,omitempty"`
}

// DefaultPath returns the config path for the tree at root.
func DefaultPath(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the config file at path. A missing file yields an empty
// config unless required is set.
func Load(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a config file. Unknown keys are errors.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if f.MaxDepth < 0 {
		return nil, fmt.Errorf("parse config: maxDepth must not be negative, got %d", f.MaxDepth)
	}
	return &f, nil
}
