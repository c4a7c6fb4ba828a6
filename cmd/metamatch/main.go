// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command metamatch lists the declarations of a source tree whose metadata
// matches a query.
//
// Usage:
//
//	metamatch [flags] [root]
//
// Flags:
//
//	-q           Query, e.g. 'service[transport=http]' (default: match everything)
//	-lang        Backend: go, java, graph (default: detect)
//	-config      YAML config file (default: <root>/.metamatch.yaml if present)
//	-metadata    Metadata annotation type (default: backend default)
//	-reserved    Comma-separated reserved annotation prefixes
//	-max-depth   Metadata discovery depth budget
//	-tests       Include test sources
//	-json        JSON output
//	-explain     Report every declaration with metadata and why it matched
//	-verbose     Debug logging to stderr
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/albertocavalcante/metamatch/internal/config"
	"github.com/albertocavalcante/metamatch/loader"
	"github.com/albertocavalcante/metamatch/match"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help")

	// Query flags
	query := flag.String("q", match.DontMatch, "Query (default: match everything)")
	lang := flag.String("lang", "", "Backend: "+strings.Join(loader.List(), ", ")+" (default: detect)")
	configPath := flag.String("config", "", "YAML config file (default: <root>/"+config.FileName+")")
	metaData := flag.String("metadata", "", "Metadata annotation type (default: backend default)")
	reserved := flag.String("reserved", "", "Comma-separated reserved annotation prefixes (default: backend default)")
	maxDepth := flag.Int("max-depth", match.DefaultMaxDepth, "Metadata discovery depth budget")
	tests := flag.Bool("tests", false, "Include test sources")
	jsonOut := flag.Bool("json", false, "JSON output")
	explain := flag.Bool("explain", false, "Report every declaration with metadata and why it matched")
	verbose := flag.Bool("verbose", false, "Debug logging to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `metamatch - Metadata Query Matcher

List the declarations of a source tree whose metadata matches a query.

Usage:
  metamatch [flags] [root]

Flags:
  -q string          Query (default: match everything)
  -lang string       Backend: %s (default: detect)
  -config string     YAML config file (default: <root>/%s if present)
  -metadata string   Metadata annotation type (default: backend default)
  -reserved string   Comma-separated reserved annotation prefixes
  -max-depth int     Metadata discovery depth budget (default: %d)
  -tests             Include test sources
  -json              JSON output
  -explain           Report every declaration with metadata and why it matched
  -verbose           Debug logging to stderr
  -version           Show version information
  -help              Show this help

Query syntax:
  kind[name][name=value]...   "*" matches any kind

Examples:
  # Everything carrying metadata of kind "service"
  metamatch -q service ./src

  # HTTP services of any kind, as JSON
  metamatch -q '*[transport=http]' -json .

  # Why did Greeter not match?
  metamatch -q 'service[public]' -explain .

`, strings.Join(loader.List(), ", "), config.FileName, match.DefaultMaxDepth)
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		return nil
	}

	if *showVersion {
		fmt.Printf("metamatch %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	if flag.NArg() > 1 {
		return fmt.Errorf("expected at most one root, got %d", flag.NArg())
	}
	root := "."
	if flag.NArg() == 1 {
		root = flag.Arg(0)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = l.Sync() }()
		log = l
	}

	file, err := loadConfig(root, *configPath)
	if err != nil {
		return err
	}

	opts := options{
		lang:     file.Lang,
		metaData: file.MetaData,
		maxDepth: file.MaxDepth,
		tests:    file.IncludeTests || *tests,
		exclude:  file.Exclude,
		extra:    file.Options,
	}
	if file.Reserved != nil {
		opts.reserved = file.Reserved
		opts.reservedSet = true
	}
	if set["lang"] {
		opts.lang = *lang
	}
	if set["metadata"] {
		opts.metaData = *metaData
	}
	if set["reserved"] {
		opts.reserved = splitList(*reserved)
		opts.reservedSet = true
	}
	if set["max-depth"] || opts.maxDepth == 0 {
		opts.maxDepth = *maxDepth
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := evaluate(ctx, root, *query, opts, *explain, log)
	if err != nil {
		return err
	}

	if *jsonOut {
		return writeJSON(os.Stdout, results)
	}
	return writeText(os.Stdout, results, *explain)
}

// options holds the settings merged from the config file and flags.
type options struct {
	lang        string
	metaData    string
	reserved    []string
	reservedSet bool
	maxDepth    int
	tests       bool
	exclude     []string
	extra       map[string]string
}

func loadConfig(root, path string) (*config.File, error) {
	if path != "" {
		return config.Load(path, true)
	}
	return config.Load(config.DefaultPath(root), false)
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
