// Copyright © 2024 AgriTrace Contributors
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msgs

import (
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const batchLedgerPrefix = "BL01"

var registered = false
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	if !registered {
		i18n.RegisterPrefix(batchLedgerPrefix, "AgriTrace Batch Ledger")
		registered = true
	}
	if !strings.HasPrefix(key, batchLedgerPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", batchLedgerPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (

	// Types BL0100XX
	MsgTypesTimeParseFail    = ffe("BL010000", "Cannot parse time as RFC3339 or unix timestamp: '%s'")
	MsgTypesScanFail         = ffe("BL010001", "Unable to scan type %T into type %T")
	MsgTypesEnumValueInvalid = ffe("BL010002", "Value must be one of %s")
	MsgTypesAccountIDEmpty   = ffe("BL010003", "Account identifier must not be empty")

	// Persistence BL0101XX
	MsgPersistenceInvalidType         = ffe("BL010100", "Invalid persistence type: %s")
	MsgPersistenceMissingURI          = ffe("BL010101", "Missing database connection URI")
	MsgPersistenceInitFailed          = ffe("BL010102", "Database init failed")
	MsgPersistenceMigrationFailed     = ffe("BL010103", "Database migration failed for '%s'")
	MsgPersistenceMissingMigrationDir = ffe("BL010104", "Missing database migration directory for autoMigrate of '%s'")

	// Boundary validation BL0111XX
	MsgInvalidOriginLocation = ffe("BL011100", "Origin location must be a non-empty string")
	MsgInvalidStatusIndex    = ffe("BL011101", "Status index %d outside enumeration range [0,%d]")
	MsgInvalidNewOwner       = ffe("BL011102", "New owner for batch %d is invalid: %s")
	MsgInvalidMutation       = ffe("BL011103", "Mutation descriptor invalid")

	// Ledger store validation BL0112XX
	MsgBatchAlreadyExists  = ffe("BL011200", "Batch %d already exists", 409)
	MsgBatchNotFound       = ffe("BL011201", "Batch %d not found", 404)
	MsgNotCurrentOwner     = ffe("BL011202", "Account %s is not the current owner of batch %d", 403)
	MsgOwnerUnchanged      = ffe("BL011203", "Account %s is already the owner of batch %d")
	MsgStatusEventMismatch = ffe("BL011204", "Status value %s is not valid for batch %d")

	// History BL0113XX
	MsgHistoryUnavailable = ffe("BL011300", "History unavailable for batch %d")

	// Commit writer BL0114XX
	MsgLedgerQuiescing     = ffe("BL011400", "Ledger shutting down")
	MsgMutationRejected    = ffe("BL011401", "Mutation %s rejected by the ledger")
	MsgSequenceRestoreFail = ffe("BL011402", "Failed to restore committed sequence position")

	// Config BL0115XX
	MsgConfigFileMissing    = ffe("BL011500", "Config file not found: %s")
	MsgConfigFileReadError  = ffe("BL011501", "Failed to read config file %s: %s")
	MsgConfigFileParseError = ffe("BL011502", "Failed to parse config file: %s")

	// HTTP server BL0116XX
	MsgHTTPServerMissingPort        = ffe("BL011600", "HTTP server port must be specified for '%s'")
	MsgHTTPServerStartFailed        = ffe("BL011601", "Failed to start HTTP server on '%s'")
	MsgHTTPServerNoWSUpgradeSupport = ffe("BL011602", "HTTP server does not support WebSocket upgrade (%T)")

	// JSON-RPC server BL0117XX
	MsgJSONRPCInvalidRequest      = ffe("BL011700", "Invalid JSON/RPC request data")
	MsgJSONRPCMissingRequestID    = ffe("BL011701", "Invalid JSON/RPC request. Must set request ID")
	MsgJSONRPCUnsupportedMethod   = ffe("BL011702", "method not supported")
	MsgJSONRPCIncorrectParamCount = ffe("BL011703", "method %s requires %d params (supplied=%d)")
	MsgJSONRPCInvalidParam        = ffe("BL011704", "method %s parameter %d invalid: %s")
	MsgJSONRPCResultSerialization = ffe("BL011705", "method %s result serialization failed: %s")

	// Component manager BL0118XX
	MsgComponentDBInitError        = ffe("BL011800", "Error initializing database")
	MsgComponentLedgerStartError   = ffe("BL011802", "Error starting ledger")
	MsgComponentRPCServerInitError = ffe("BL011803", "Error initializing RPC server")
	MsgComponentDebugInitError     = ffe("BL011804", "Error initializing debug server")
)
