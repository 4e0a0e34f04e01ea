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

package i18n

var (
	MsgConfigFailed               = rwm("RW10101", "Failed to read config: %s")
	MsgContextCanceled            = rwm("RW10102", "Context cancelled")
	MsgJSONDecodeFailed           = rwm("RW10103", "Failed to decode input JSON", 400)
	MsgAPIServerStartFailed       = rwm("RW10104", "Unable to start listener on %s: %s")
	MsgResponseMarshalError       = rwm("RW10105", "Failed to serialize response data", 400)
	Msg404NotFound                = rwm("RW10106", "Not found", 404)
	MsgWebsocketClientError       = rwm("RW10107", "Error received from WebSocket client: %s")
	MsgMissingPluginConfig        = rwm("RW10108", "Missing configuration '%s' for %s")
	MsgUnknownDatabasePlugin      = rwm("RW10109", "Unknown database plugin: %s")
	MsgDBInitFailed               = rwm("RW10110", "Database initialization failed")
	MsgDBMigrationFailed          = rwm("RW10111", "Database migration failed")
	MsgDBBeginFailed              = rwm("RW10112", "Database begin transaction failed")
	MsgDBCommitFailed             = rwm("RW10113", "Database commit failed")
	MsgDBQueryBuildFailed         = rwm("RW10114", "Database query builder failed")
	MsgDBQueryFailed              = rwm("RW10115", "Database query failed")
	MsgDBUpdateFailed             = rwm("RW10116", "Database update failed")
	MsgDBReadErr                  = rwm("RW10117", "Database resultset read error from table '%s'")
	MsgNodeRPCError               = rwm("RW10118", "Error from ledger node: %s")
	MsgNodeRPCInvalidResponse     = rwm("RW10119", "Invalid response from ledger node for %s: %s")
	MsgInvalidAddress             = rwm("RW10120", "Invalid ledger address '%s'", 400)
	MsgInvalidAmount              = rwm("RW10121", "Invalid amount '%s'", 400)
	MsgInvalidTransactionInput    = rwm("RW10122", "Invalid transaction input: %s", 400)
	MsgSigningError               = rwm("RW10123", "Signing failed for %s: %s")
	MsgKeyAddressMismatch         = rwm("RW10124", "Key for %s cannot sign for %s")
	MsgKeyDecryptFailed           = rwm("RW10125", "Failed to decrypt key material for %s")
	MsgKeyEncryptFailed           = rwm("RW10126", "Failed to encrypt key material for %s")
	MsgSubmissionRejected         = rwm("RW10127", "Transaction %s rejected by ledger node (%s): %s")
	MsgSubmissionUnknown          = rwm("RW10128", "Transaction %s outcome unknown after %s: %s")
	MsgInvalidEvent               = rwm("RW10129", "Invalid reward event: %s", 400)
	MsgUnknownEventType           = rwm("RW10130", "Unknown reward event type '%s'", 400)
	MsgMissingKeyMaterial         = rwm("RW10131", "No key material available for %s", 400)
	MsgDispatcherClosed           = rwm("RW10132", "Reward dispatcher is closed", 503)
	MsgDispatchQueueFull          = rwm("RW10133", "Reward dispatch queue is full", 503)
	MsgABIEncodeFailed            = rwm("RW10134", "Failed to encode token call '%s'")
	MsgABIDecodeFailed            = rwm("RW10135", "Failed to decode token call '%s' result")
	MsgSystemAccountLoadFailed    = rwm("RW10136", "Failed to load system account key material")
	MsgInvalidOutputOption        = rwm("RW10137", "Invalid output option '%s'")
	MsgRequestSchemaInvalid       = rwm("RW10138", "Request failed validation: %s", 400)
	MsgTransferRecordNotFound     = rwm("RW10139", "Transfer record '%s' not found", 404)
	MsgInvalidChainID             = rwm("RW10140", "Invalid chain ID '%s'")
	MsgInitializationNilDepError  = rwm("RW10141", "Initialization error due to a nil dependency")
	MsgInvalidHash                = rwm("RW10142", "Invalid transaction hash '%s'", 400)
	MsgInvalidQueryParam          = rwm("RW10143", "Invalid query parameter '%s'", 400)
	MsgMissingIdentity            = rwm("RW10144", "An identity is required to provision an account", 400)
	MsgKeyGenerationFailed        = rwm("RW10145", "Failed to generate key for '%s'")
	MsgTransferAlreadyReconciled  = rwm("RW10146", "Transfer record '%s' is already in state '%s'", 409)
	MsgSubmissionTransportFailure = rwm("RW10147", "Transaction %s could not be delivered to ledger node: %s")
	MsgDBInsertFailed             = rwm("RW10148", "Database insert failed")
	MsgRequestTimeout             = rwm("RW10149", "The request with id '%s' timed out after %.2fms", 408)
	MsgSchemaLoadFailed           = rwm("RW10150", "Failed to load JSON schema for '%s'")
)
