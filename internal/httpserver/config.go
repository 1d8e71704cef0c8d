// Copyright © 2024 AgriTrace Contributors
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

package httpserver

import "github.com/agritrace/batchledger/internal/confutil"

type Config struct {
	Address               *string `yaml:"address"`
	Port                  *int    `yaml:"port"`
	DefaultRequestTimeout *string `yaml:"defaultRequestTimeout"`
	MaxRequestTimeout     *string `yaml:"maxRequestTimeout"`
	ReadTimeout           *string `yaml:"readTimeout"`
	WriteTimeout          *string `yaml:"writeTimeout"`
	ShutdownTimeout       *string `yaml:"shutdownTimeout"`
}

var ConfigDefaults = &Config{
	Address:               confutil.P("127.0.0.1"),
	DefaultRequestTimeout: confutil.P("2m"),
	MaxRequestTimeout:     confutil.P("10m"),
	ShutdownTimeout:       confutil.P("10s"),
}
