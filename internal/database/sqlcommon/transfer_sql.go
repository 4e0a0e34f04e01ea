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

package sqlcommon

import (
	"context"
	"database/sql"
	"math/big"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

var (
	transferColumns = []string{
		"id",
		"event_id",
		"event_type",
		"idx",
		"kind",
		"from_address",
		"beneficiary",
		"amount",
		"state",
		"failure",
		"message",
		"nonce",
		"tx_hash",
		"attempts",
		"created",
		"updated",
	}
)

const transfersTable = "transfers"

func (s *SQLCommon) InsertTransfer(ctx context.Context, record *rwtypes.TransferRecord) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	amount := "0"
	if record.Amount != nil {
		amount = record.Amount.String()
	}
	var nonce sql.NullInt64
	if record.Nonce != nil {
		nonce = sql.NullInt64{Int64: int64(*record.Nonce), Valid: true}
	}
	record.Sequence, err = s.insertTx(ctx, tx,
		sq.Insert(transfersTable).
			Columns(transferColumns...).
			Values(
				record.ID.String(),
				record.EventID.String(),
				string(record.EventType),
				record.Index,
				string(record.Kind),
				record.From.Hex(),
				record.Beneficiary.Hex(),
				amount,
				string(record.State),
				nullString(string(record.Failure)),
				nullString(record.Message),
				nonce,
				hashString(record.TxHash),
				record.Attempts,
				record.Created.UnixNano(),
				record.Updated.UnixNano(),
			),
		nil,
	)
	if err != nil {
		return err
	}

	return s.commitTx(ctx, tx, autoCommit)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func hashString(h *common.Hash) sql.NullString {
	if h == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: h.Hex(), Valid: true}
}

func (s *SQLCommon) transferResult(ctx context.Context, row *sql.Rows) (*rwtypes.TransferRecord, error) {
	var r rwtypes.TransferRecord
	var id, eventID, eventType, kind, from, beneficiary, amount, state string
	var failure, message, txHash sql.NullString
	var nonce sql.NullInt64
	var created, updated int64
	err := row.Scan(
		&r.Sequence,
		&id,
		&eventID,
		&eventType,
		&r.Index,
		&kind,
		&from,
		&beneficiary,
		&amount,
		&state,
		&failure,
		&message,
		&nonce,
		&txHash,
		&r.Attempts,
		&created,
		&updated,
	)
	if err == nil {
		r.ID, err = uuid.Parse(id)
	}
	if err == nil {
		r.EventID, err = uuid.Parse(eventID)
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, transfersTable)
	}
	var ok bool
	if r.Amount, ok = new(big.Int).SetString(amount, 10); !ok {
		return nil, i18n.NewError(ctx, i18n.MsgDBReadErr, transfersTable)
	}
	r.EventType = rwtypes.EventType(eventType)
	r.Kind = rwtypes.TransferKind(kind)
	r.From = common.HexToAddress(from)
	r.Beneficiary = common.HexToAddress(beneficiary)
	r.State = rwtypes.TransferState(state)
	r.Failure = rwtypes.FailureKind(failure.String)
	r.Message = message.String
	if nonce.Valid {
		n := uint64(nonce.Int64)
		r.Nonce = &n
	}
	if txHash.Valid {
		h := common.HexToHash(txHash.String)
		r.TxHash = &h
	}
	r.Created = time.Unix(0, created).UTC()
	r.Updated = time.Unix(0, updated).UTC()
	return &r, nil
}

func transferSelect() sq.SelectBuilder {
	return sq.Select(append([]string{sequenceColumn}, transferColumns...)...).From(transfersTable)
}

func (s *SQLCommon) GetTransferByID(ctx context.Context, id uuid.UUID) (*rwtypes.TransferRecord, error) {
	rows, err := s.query(ctx, transferSelect().Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("Transfer '%s' not found", id)
		return nil, nil
	}

	return s.transferResult(ctx, rows)
}

func (s *SQLCommon) GetTransfers(ctx context.Context, filter *rwtypes.TransferFilter) ([]*rwtypes.TransferRecord, error) {
	query := transferSelect()
	if filter != nil {
		if len(filter.States) > 0 {
			states := make([]string, len(filter.States))
			for i, st := range filter.States {
				states[i] = string(st)
			}
			query = query.Where(sq.Eq{"state": states})
		}
		if filter.EventID != nil {
			query = query.Where(sq.Eq{"event_id": filter.EventID.String()})
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
		if filter.Skip > 0 {
			query = query.Offset(filter.Skip)
		}
	}
	query = query.OrderBy(sequenceColumn + " DESC")

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*rwtypes.TransferRecord{}
	for rows.Next() {
		r, err := s.transferResult(ctx, rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *SQLCommon) UpdateTransferState(ctx context.Context, id uuid.UUID, state rwtypes.TransferState, txHash *common.Hash) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	update := sq.Update(transfersTable).
		Set("state", string(state)).
		Set("updated", time.Now().UnixNano())
	if txHash != nil {
		update = update.Set("tx_hash", txHash.Hex())
	}
	affected, err := s.updateTx(ctx, tx, update.Where(sq.Eq{"id": id.String()}), nil)
	if err != nil {
		return err
	}
	if affected == 0 {
		return i18n.NewError(ctx, i18n.MsgTransferRecordNotFound, id)
	}

	return s.commitTx(ctx, tx, autoCommit)
}
