// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package source walks source trees and reads their files through afs, so
// that local directories and any other afs-supported location look the
// same to the backends.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// File is a source file found in a tree.
type File struct {
	// Path is the slash-separated path relative to the tree root.
	Path string

	// URL is the afs location of the file.
	URL string
}

// Dir returns the slash-separated directory of the file relative to the
// root ("" for the root itself).
func (f File) Dir() string {
	dir := path.Dir(f.Path)
	if dir == "." {
		return ""
	}
	return dir
}

// Options controls which files a walk returns.
type Options struct {
	// Extensions lists the accepted file extensions (e.g., ".go").
	Extensions []string

	// Names lists accepted exact base names (e.g., "go.mod").
	Names []string

	// Exclude lists directory names whose subtrees are skipped.
	Exclude []string

	// Skip reports whether a matching file should be dropped anyway
	// (e.g., test sources).
	Skip func(name string) bool
}

// Tree is a source tree rooted at a URL or local path.
type Tree struct {
	fs   afs.Service
	root string
}

// Open returns the tree rooted at root.
func Open(root string) *Tree {
	return &Tree{fs: afs.New(), root: root}
}

// Root returns the tree root as given to Open.
func (t *Tree) Root() string { return t.root }

// Walk returns the files under the root accepted by opts, sorted by path.
// Hidden directories are always skipped.
func (t *Tree) Walk(ctx context.Context, opts Options) ([]File, error) {
	var files []File
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if info.IsDir() || skippedDir(parent, opts.Exclude) {
			return true, nil
		}
		name := info.Name()
		if !accepted(name, opts) {
			return true, nil
		}
		files = append(files, File{
			Path: path.Join(parent, name),
			URL:  url.Join(url.Join(baseURL, parent), name),
		})
		return true, nil
	}
	if err := t.fs.Walk(ctx, t.root, visitor); err != nil {
		return nil, fmt.Errorf("walk %s: %w", t.root, err)
	}
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })
	return files, nil
}

// Read returns the content of f.
func (t *Tree) Read(ctx context.Context, f File) ([]byte, error) {
	data, err := t.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

// Has reports whether the root contains a file with the given base name.
func (t *Tree) Has(ctx context.Context, name string) bool {
	ok, err := t.fs.Exists(ctx, url.Join(t.root, name))
	return err == nil && ok
}

// Contains reports whether any file under the root has one of exts.
func (t *Tree) Contains(ctx context.Context, exts []string, exclude []string) bool {
	files, err := t.Walk(ctx, Options{Extensions: exts, Exclude: exclude})
	return err == nil && len(files) > 0
}

func accepted(name string, opts Options) bool {
	ok := slices.Contains(opts.Names, name)
	if !ok {
		for _, ext := range opts.Extensions {
			if strings.HasSuffix(name, ext) {
				ok = true
				break
			}
		}
	}
	if ok && opts.Skip != nil && opts.Skip(name) {
		return false
	}
	return ok
}

// skippedDir reports whether any element of the relative directory is
// hidden or excluded.
func skippedDir(parent string, exclude []string) bool {
	if parent == "" {
		return false
	}
	for _, elem := range strings.Split(parent, "/") {
		if elem == "" {
			continue
		}
		if strings.HasPrefix(elem, ".") || strings.HasPrefix(elem, "_") || slices.Contains(exclude, elem) {
			return true
		}
	}
	return false
}
