// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package source

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModFile is the Go module marker file.
const GoModFile = "go.mod"

// Modules maps directories of a tree to Go module paths.
type Modules struct {
	// dirs maps a relative module root ("" for the tree root) to its
	// module path.
	dirs map[string]string
	// roots holds the keys of dirs, longest first.
	roots []string
}

// LoadModules finds every go.mod in the tree and reads its module path.
func (t *Tree) LoadModules(ctx context.Context, exclude []string) (*Modules, error) {
	files, err := t.Walk(ctx, Options{Names: []string{GoModFile}, Exclude: exclude})
	if err != nil {
		return nil, err
	}

	m := &Modules{dirs: make(map[string]string, len(files))}
	for _, f := range files {
		data, err := t.Read(ctx, f)
		if err != nil {
			return nil, err
		}
		modPath := modfile.ModulePath(data)
		if modPath == "" {
			return nil, fmt.Errorf("%s: no module directive", f.Path)
		}
		m.dirs[f.Dir()] = modPath
		m.roots = append(m.roots, f.Dir())
	}
	slices.SortFunc(m.roots, func(a, b string) int { return len(b) - len(a) })
	return m, nil
}

// ImportPath returns the import path of the package in dir (relative to
// the tree root). Directories outside any module use their relative path.
func (m *Modules) ImportPath(dir string) string {
	for _, root := range m.roots {
		if root == "" {
			return path.Join(m.dirs[root], dir)
		}
		if dir == root {
			return m.dirs[root]
		}
		if rel, ok := strings.CutPrefix(dir, root+"/"); ok {
			return path.Join(m.dirs[root], rel)
		}
	}
	if dir == "" {
		return "main"
	}
	return dir
}
