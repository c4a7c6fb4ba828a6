// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package annotation declares the metadata annotation understood by the Go
// backend of metamatch.
//
// Annotations are written as doc-comment directives. Because a directive is
// only a comment, reference this package with a blank import so that the
// qualifier resolves:
//
//	import _ "github.com/albertocavalcante/metamatch/annotation"
//
//	//@annotation.MetaData{Kind: "service", Properties: []string{"transport=http"}}
//	type HTTPService struct{}
//
//	//@HTTPService
//	type Greeter struct{}
//
// Greeter now matches the query "service[transport=http]" through the
// meta-annotation on HTTPService.
package annotation

// MetaData attaches a kind and a list of "name" or "name=value" properties
// to a declaration or to another annotation type.
type MetaData struct {
	Kind       string   `default:""`
	Properties []string `default:""`
}
