// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
)

type swaggerGenConfig struct {
	BaseURL string
	Title   string
	Version string
}

var customRegexRemoval = regexp.MustCompile(`{(\w+)\:[^}]+}`)

var pathParamExtractor = regexp.MustCompile(`{(\w+)}`)

func swaggerGen(ctx context.Context, routes []*route, conf *swaggerGenConfig) *openapi3.T {

	doc := &openapi3.T{
		OpenAPI: "3.0.2",
		Servers: openapi3.Servers{
			{URL: conf.BaseURL},
		},
		Info: &openapi3.Info{
			Title:   conf.Title,
			Version: conf.Version,
		},
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}
	opIds := make(map[string]bool)
	for _, route := range routes {
		if route.name == "" || opIds[route.name] {
			log.Panicf("Duplicate/invalid name (used as operation ID in swagger): %s", route.name)
		}
		addRoute(ctx, doc, route)
		opIds[route.name] = true
	}
	return doc
}

func getPathItem(doc *openapi3.T, path string) (string, *openapi3.PathItem) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = customRegexRemoval.ReplaceAllString(path, `{$1}`)
	if doc.Paths == nil {
		doc.Paths = openapi3.Paths{}
	}
	pi, ok := doc.Paths[path]
	if ok {
		return path, pi
	}
	pi = &openapi3.PathItem{}
	doc.Paths[path] = pi
	return path, pi
}

// addCustomType maps the ledger and ID types onto their JSON string forms
func addCustomType(t reflect.Type, schema *openapi3.Schema) {
	switch t.Name() {
	case "Address", "Hash":
		schema.Type = "string"
		schema.Format = ""
		schema.Pattern = ""
		schema.Items = nil
	case "UUID":
		schema.Type = "string"
		schema.Format = "uuid"
		schema.Items = nil
	case "Int":
		schema.Type = "integer"
		schema.Properties = nil
	case "KeyMaterial":
		schema.Type = "object"
		schema.Format = ""
		schema.Items = nil
	}
}

func schemaForValue(doc *openapi3.T, value interface{}) *openapi3.SchemaRef {
	schemaRef, err := openapi3gen.NewSchemaRefForValue(value, doc.Components.Schemas, openapi3gen.SchemaCustomizer(
		func(name string, t reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
			addCustomType(t, schema)
			return nil
		}))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %s", err))
	}
	return schemaRef
}

func addInput(doc *openapi3.T, route *route, op *openapi3.Operation) {
	var schemaRef *openapi3.SchemaRef
	switch {
	case route.jsonInputSchema != "":
		if err := json.Unmarshal([]byte(route.jsonInputSchema), &schemaRef); err != nil {
			panic(fmt.Sprintf("invalid schema: %s", err))
		}
	case route.jsonInputValue != nil:
		schemaRef = schemaForValue(doc, route.jsonInputValue())
	default:
		return
	}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: schemaRef,
				},
			},
		},
	}
}

func addOutput(ctx context.Context, doc *openapi3.T, route *route, op *openapi3.Operation) {
	var schemaRef *openapi3.SchemaRef
	if route.jsonOutputValue != nil {
		schemaRef = schemaForValue(doc, route.jsonOutputValue())
	}
	codes := append([]int{route.jsonOutputCode}, route.altOutputCodes...)
	for _, code := range codes {
		s := i18n.Expand(ctx, i18n.APISuccessResponse)
		op.Responses[strconv.FormatInt(int64(code), 10)] = &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &s,
				Content: openapi3.Content{
					"application/json": &openapi3.MediaType{
						Schema: schemaRef,
					},
				},
			},
		}
	}
}

func addParam(ctx context.Context, op *openapi3.Operation, in, name, def string, description i18n.MessageKey, msgArgs ...interface{}) {
	var defValue interface{}
	if def != "" {
		defValue = def
	}
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			In:          in,
			Name:        name,
			Required:    in == "path",
			Description: i18n.Expand(ctx, description, msgArgs...),
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type:    "string",
					Default: defValue,
				},
			},
		},
	})
}

func addRoute(ctx context.Context, doc *openapi3.T, route *route) {
	path, pi := getPathItem(doc, route.path)
	op := &openapi3.Operation{
		Description: i18n.Expand(ctx, route.description),
		OperationID: route.name,
		Responses:   openapi3.NewResponses(),
	}
	if route.method != http.MethodGet && route.method != http.MethodDelete {
		addInput(doc, route, op)
	}
	addOutput(ctx, doc, route, op)
	for _, m := range pathParamExtractor.FindAllStringSubmatch(path, -1) {
		addParam(ctx, op, "path", m[1], "", i18n.APIPathParamDesc, m[1])
	}
	for _, q := range route.queryParams {
		addParam(ctx, op, "query", q.name, q.def, q.description)
	}
	addParam(ctx, op, "header", "Request-Timeout", config.GetString(config.APIRequestTimeout), i18n.APIRequestTimeoutDesc)
	switch route.method {
	case http.MethodGet:
		pi.Get = op
	case http.MethodPut:
		pi.Put = op
	case http.MethodPost:
		pi.Post = op
	case http.MethodDelete:
		pi.Delete = op
	}
}
