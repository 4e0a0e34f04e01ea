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

package cmd

import (
	"bytes"
	"encoding/json"
	"runtime/debug"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
)

func runVersion(t *testing.T, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs(append([]string{"version"}, args...))
	defer rootCmd.SetArgs([]string{})
	defer func() { shortened, output = false, "json" }()
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmdDefault(t *testing.T) {
	BuildVersionOverride = "v1.2.3"
	defer func() { BuildVersionOverride = "" }()
	out, err := runVersion(t)
	assert.NoError(t, err)
	var info Info
	err = json.Unmarshal([]byte(out), &info)
	assert.NoError(t, err)
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "Apache-2.0", info.License)
}

func TestVersionCmdYAML(t *testing.T) {
	BuildVersionOverride = "v1.2.3"
	defer func() { BuildVersionOverride = "" }()
	out, err := runVersion(t, "-o", "yaml")
	assert.NoError(t, err)
	var info Info
	err = yaml.Unmarshal([]byte(out), &info)
	assert.NoError(t, err)
	assert.Equal(t, "v1.2.3", info.Version)
}

func TestVersionCmdJSON(t *testing.T) {
	out, err := runVersion(t, "-o", "json")
	assert.NoError(t, err)
	assert.Contains(t, out, `"License": "Apache-2.0"`)
}

func TestVersionCmdInvalidType(t *testing.T) {
	_, err := runVersion(t, "-o", "wrong")
	assert.Regexp(t, "RW10137", err)
}

func TestVersionCmdShorthand(t *testing.T) {
	BuildVersionOverride = "v1.2.3"
	defer func() { BuildVersionOverride = "" }()
	out, err := runVersion(t, "-s")
	assert.NoError(t, err)
	assert.Equal(t, "v1.2.3\n", out)
}

func TestSetBuildInfoWithBI(t *testing.T) {
	info := &Info{}
	setBuildInfo(info, &debug.BuildInfo{Main: debug.Module{Version: "12345"}}, true)
	assert.Equal(t, "12345", info.Version)
}

func TestSetBuildInfoVCS(t *testing.T) {
	info := &Info{Date: "2021-06-01"}
	setBuildInfo(info, &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "4f1c2d9"},
			{Key: "vcs.time", Value: "2021-07-01T10:00:00Z"},
		},
	}, true)
	assert.Equal(t, "(devel)", info.Version)
	assert.Equal(t, "4f1c2d9", info.Commit)
	assert.Equal(t, "2021-06-01", info.Date)
}

func TestSetBuildInfoMissing(t *testing.T) {
	info := &Info{Version: "v0.0.1"}
	setBuildInfo(info, nil, false)
	assert.Equal(t, "v0.0.1", info.Version)
}
