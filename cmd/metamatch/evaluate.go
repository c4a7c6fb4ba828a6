// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/albertocavalcante/metamatch/loader"
	"github.com/albertocavalcante/metamatch/match"
	"github.com/albertocavalcante/metamatch/model"
)

// result is the evaluation of the query against one declaration.
type result struct {
	Decl   *model.Decl
	Result match.Result
}

// evaluate loads the tree at root and matches every declaration against
// query. Only matches are returned unless all is set, in which case every
// declaration with metadata is returned too.
func evaluate(ctx context.Context, root, query string, opts options, all bool, log *zap.Logger) ([]result, error) {
	cfg := loader.Config{
		IncludeTests: opts.tests,
		Exclude:      opts.exclude,
		Logger:       log,
		Options:      opts.extra,
	}

	l, err := selectLoader(ctx, root, opts.lang, cfg.Excluded())
	if err != nil {
		return nil, err
	}
	meta := l.Metadata()
	log.Debug("selected loader", zap.String("lang", meta.Name), zap.String("root", root))

	u, err := l.Load(ctx, root, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s sources: %w", meta.Name, err)
	}

	mcfg := match.Config{
		MetaDataType:     meta.MetaDataType,
		ReservedPrefixes: meta.ReservedPrefixes,
		MaxDepth:         opts.maxDepth,
		Logger:           log,
	}
	if opts.metaData != "" {
		mcfg.MetaDataType = opts.metaData
	}
	if opts.reservedSet {
		mcfg.ReservedPrefixes = opts.reserved
	}
	m := match.NewMatcher(mcfg)

	var results []result
	for _, d := range u.Decls() {
		res := explain(m, d, query)
		if res.Matched || (all && res.Descriptor != nil) {
			results = append(results, result{Decl: d, Result: res})
		}
	}
	return results, nil
}

// explain evaluates query against elem. The sentinel query matches without
// discovery, so the descriptor is looked up separately for display.
func explain(m *match.Matcher, elem model.Element, query string) match.Result {
	res := m.Explain(elem, query)
	if query == match.DontMatch && res.Descriptor == nil {
		if desc, ok := m.Finder().Find(elem); ok {
			res.Descriptor = desc
		}
	}
	return res
}

func selectLoader(ctx context.Context, root, lang string, exclude []string) (loader.Loader, error) {
	if lang == "" {
		return loader.Detect(ctx, root, exclude)
	}
	l, ok := loader.Get(lang)
	if !ok {
		return nil, fmt.Errorf("unknown language %q (available: %v)", lang, loader.List())
	}
	return l, nil
}
