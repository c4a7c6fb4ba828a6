// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package loader

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/metamatch/internal/source"
)

// Detect picks the registered loader for the tree at root. Marker files at
// the root win, then source file extensions of marker-based loaders. A
// loader without markers is the fallback.
func Detect(ctx context.Context, root string, exclude []string) (Loader, error) {
	tree := source.Open(root)
	loaders := All()

	for _, l := range loaders {
		for _, marker := range l.Metadata().Markers {
			if tree.Has(ctx, marker) {
				return l, nil
			}
		}
	}

	var fallback Loader
	for _, l := range loaders {
		meta := l.Metadata()
		if len(meta.Markers) == 0 {
			if fallback == nil {
				fallback = l
			}
			continue
		}
		if tree.Contains(ctx, meta.FileExtensions, exclude) {
			return l, nil
		}
	}
	if fallback == nil {
		return nil, fmt.Errorf("cannot detect the language of %s (available: %v)", root, List())
	}
	return fallback, nil
}
