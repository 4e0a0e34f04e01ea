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
	"strings"

	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/xeipuuv/gojsonschema"
)

type jsonValidator struct {
	name   string
	schema *gojsonschema.Schema
}

func newJSONValidator(ctx context.Context, name, schemaJSON string) (*jsonValidator, error) {
	sl := gojsonschema.NewStringLoader(schemaJSON)
	schema, err := gojsonschema.NewSchema(sl)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSchemaLoadFailed, name)
	}
	return &jsonValidator{
		name:   name,
		schema: schema,
	}, nil
}

func (jv *jsonValidator) validateBytes(ctx context.Context, b []byte) error {
	res, err := jv.schema.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgJSONDecodeFailed)
	}
	if !res.Valid() {
		errStrings := make([]string, len(res.Errors()))
		for i, e := range res.Errors() {
			errStrings[i] = e.String()
		}
		return i18n.NewError(ctx, i18n.MsgRequestSchemaInvalid, strings.Join(errStrings, ","))
	}
	return nil
}
