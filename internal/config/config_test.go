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

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

const configDir = "../../test/config"

func TestInitConfigOK(t *testing.T) {
	viper.Reset()
	err := ReadConfig("")
	assert.Regexp(t, "Not Found", err.Error())
}

func TestDefaults(t *testing.T) {
	cwd, _ := os.Getwd()
	os.Chdir(configDir)
	defer os.Chdir(cwd)
	err := ReadConfig("")
	assert.NoError(t, err)

	assert.Equal(t, "debug", GetString(LogLevel))
	assert.True(t, GetBool(LogColor))
	assert.Equal(t, uint(5108), GetUint(HTTPPort))
	assert.Equal(t, -1, GetInt(DebugPort))
	assert.Equal(t, 2.0, GetFloat64(DispatcherNonceRetryFactor))
	assert.Equal(t, 100*time.Millisecond, GetDuration(DispatcherNonceRetryInitDelay))
	assert.Equal(t, int64(1337), GetInt64(LedgerChainID))
	assert.Equal(t, "12", GetString(RewardsAnswerAuthor))
	assert.Equal(t, []string{"*"}, GetStringSlice(CorsAllowedOrigins))
}

func TestSpecificConfigFileOk(t *testing.T) {
	err := ReadConfig(configDir + "/rewardd.core.yaml")
	assert.NoError(t, err)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", GetString(LedgerTokenAddress))
}

func TestSpecificConfigFileFail(t *testing.T) {
	err := ReadConfig(configDir + "/no.hope.yaml")
	assert.Error(t, err)
}

func TestAttemptToAccessRandomKey(t *testing.T) {
	assert.Panics(t, func() {
		GetString("any.key")
	})
}

func TestSetGetMap(t *testing.T) {
	Reset()
	Set(SystemKeystoreJSON, map[string]interface{}{"some": "map"})
	assert.Equal(t, map[string]interface{}{"some": "map"}, GetObject(SystemKeystoreJSON))
}

func TestSetGetRawInterace(t *testing.T) {
	type myType struct{ name string }
	Set(SystemKeystoreJSON, &myType{name: "test"})
	v := Get(SystemKeystoreJSON)
	assert.Equal(t, myType{name: "test"}, *(v.(*myType)))
}

func TestPluginConfig(t *testing.T) {
	pic := NewPluginConfig("my")
	pic.AddKnownKey("special.config", 12345)
	assert.Equal(t, 12345, pic.GetInt("special.config"))
	assert.Equal(t, "my.special.config", pic.Resolve("special.config"))
}

func TestPluginConfigArrayInit(t *testing.T) {
	pic := NewPluginConfig("my").SubPrefix("special")
	pic.AddKnownKey("config", "val1", "val2", "val3")
	assert.Equal(t, []string{"val1", "val2", "val3"}, pic.GetStringSlice("config"))
}

func TestUnmarshalKey(t *testing.T) {
	pic := NewPluginConfig("my")
	pic.AddKnownKey("obj")
	pic.Set("obj", map[string]interface{}{"name": "system"})
	var target struct {
		Name string `json:"name"`
	}
	err := pic.UnmarshalKey(context.Background(), "obj", &target)
	assert.NoError(t, err)
	assert.Equal(t, "system", target.Name)
}

func TestUnmarshalKeyFail(t *testing.T) {
	pic := NewPluginConfig("my")
	pic.AddKnownKey("bad")
	pic.Set("bad", map[string]interface{}{"name": map[string]interface{}{}})
	var target struct {
		Name string `json:"name"`
	}
	err := pic.UnmarshalKey(context.Background(), "bad", &target)
	assert.Regexp(t, "RW10101", err)
}

func TestGetKnownKeys(t *testing.T) {
	knownKeys := GetKnownKeys()
	assert.NotEmpty(t, knownKeys)
	for _, k := range knownKeys {
		assert.NotEmpty(t, root.Resolve(k))
	}
}
