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

package componentmgr

import (
	"github.com/agritrace/batchledger/internal/custody"
	"github.com/agritrace/batchledger/internal/httpserver"
	"github.com/agritrace/batchledger/internal/ledger"
	"github.com/agritrace/batchledger/internal/persistence"
	"github.com/agritrace/batchledger/internal/rpcserver"
)

type LogConfig struct {
	Level *string `yaml:"level"`
}

type DebugServerConfig struct {
	Enabled           *bool `yaml:"enabled"`
	httpserver.Config `yaml:",inline"`
}

type Config struct {
	Log         LogConfig          `yaml:"log"`
	DB          persistence.Config `yaml:"db"`
	Ledger      ledger.Config      `yaml:"ledger"`
	Custody     custody.Config     `yaml:"custody"`
	RPCServer   rpcserver.Config   `yaml:"rpcServer"`
	DebugServer DebugServerConfig  `yaml:"debugServer"`
}
