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
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/stretchr/testify/assert"
)

func newTestTransfer(state rwtypes.TransferState) *rwtypes.TransferRecord {
	nonce := uint64(42)
	now := time.Now().UTC()
	return &rwtypes.TransferRecord{
		ID:          uuid.New(),
		EventID:     uuid.New(),
		EventType:   rwtypes.EventTypeLikeGiven,
		Index:       1,
		Kind:        rwtypes.TransferKindToken,
		From:        common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Beneficiary: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Amount:      new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil),
		State:       state,
		Failure:     rwtypes.FailureUnknown,
		Message:     "timed out",
		Nonce:       &nonce,
		Attempts:    2,
		Created:     now,
		Updated:     now,
	}
}

func TestTransfersE2EWithDB(t *testing.T) {
	s := newSQLiteTestProvider(t)
	defer s.Close()
	ctx := context.Background()

	r1 := newTestTransfer(rwtypes.TransferStateUnknown)
	err := s.InsertTransfer(ctx, r1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), r1.Sequence)

	r2 := newTestTransfer(rwtypes.TransferStateSubmitted)
	r2.EventID = r1.EventID
	r2.Failure = ""
	r2.Message = ""
	hash := common.HexToHash("0xabcdef")
	r2.TxHash = &hash
	err = s.InsertTransfer(ctx, r2)
	assert.NoError(t, err)

	r3 := newTestTransfer(rwtypes.TransferStateFailed)
	r3.Nonce = nil
	r3.Kind = rwtypes.TransferKindNative
	err = s.InsertTransfer(ctx, r3)
	assert.NoError(t, err)

	read, err := s.GetTransferByID(ctx, r1.ID)
	assert.NoError(t, err)
	assert.Equal(t, r1.ID, read.ID)
	assert.Equal(t, r1.EventID, read.EventID)
	assert.Equal(t, rwtypes.EventTypeLikeGiven, read.EventType)
	assert.Equal(t, 1, read.Index)
	assert.Equal(t, rwtypes.TransferKindToken, read.Kind)
	assert.Equal(t, r1.From, read.From)
	assert.Equal(t, r1.Beneficiary, read.Beneficiary)
	assert.Equal(t, "100000000000000000000", read.Amount.String())
	assert.Equal(t, rwtypes.FailureUnknown, read.Failure)
	assert.Equal(t, "timed out", read.Message)
	assert.Equal(t, uint64(42), *read.Nonce)
	assert.Nil(t, read.TxHash)
	assert.Equal(t, 2, read.Attempts)
	assert.True(t, r1.Created.Equal(read.Created))

	read, err = s.GetTransferByID(ctx, r3.ID)
	assert.NoError(t, err)
	assert.Nil(t, read.Nonce)
	assert.Equal(t, rwtypes.TransferKindNative, read.Kind)

	read, err = s.GetTransferByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, read)

	all, err := s.GetTransfers(ctx, &rwtypes.TransferFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, r3.ID, all[0].ID)
	assert.Equal(t, r1.ID, all[2].ID)

	debts, err := s.GetTransfers(ctx, &rwtypes.TransferFilter{
		States: []rwtypes.TransferState{rwtypes.TransferStateFailed, rwtypes.TransferStateUnknown},
	})
	assert.NoError(t, err)
	assert.Len(t, debts, 2)

	byEvent, err := s.GetTransfers(ctx, &rwtypes.TransferFilter{EventID: &r1.EventID})
	assert.NoError(t, err)
	assert.Len(t, byEvent, 2)
	assert.Equal(t, hash, *byEvent[0].TxHash)

	page, err := s.GetTransfers(ctx, &rwtypes.TransferFilter{Limit: 1, Skip: 1})
	assert.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, r2.ID, page[0].ID)

	settled := common.HexToHash("0x1234")
	err = s.UpdateTransferState(ctx, r1.ID, rwtypes.TransferStateReconciled, &settled)
	assert.NoError(t, err)
	read, err = s.GetTransferByID(ctx, r1.ID)
	assert.NoError(t, err)
	assert.Equal(t, rwtypes.TransferStateReconciled, read.State)
	assert.Equal(t, settled, *read.TxHash)
	assert.False(t, read.Reconcilable())

	err = s.UpdateTransferState(ctx, r3.ID, rwtypes.TransferStateReconciled, nil)
	assert.NoError(t, err)
	read, err = s.GetTransferByID(ctx, r3.ID)
	assert.NoError(t, err)
	assert.Nil(t, read.TxHash)

	err = s.UpdateTransferState(ctx, uuid.New(), rwtypes.TransferStateReconciled, nil)
	assert.Regexp(t, "RW10139", err)
}

func TestInsertTransferFailBegin(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectBegin().WillReturnError(fmt.Errorf("pop"))
	err := s.InsertTransfer(context.Background(), newTestTransfer(rwtypes.TransferStateFailed))
	assert.Regexp(t, "RW10112", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertTransferFailInsert(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT .*").WillReturnError(fmt.Errorf("pop"))
	mock.ExpectRollback()
	err := s.InsertTransfer(context.Background(), newTestTransfer(rwtypes.TransferStateFailed))
	assert.Regexp(t, "RW10148", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertTransferFailCommit(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT .*").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(fmt.Errorf("pop"))
	err := s.InsertTransfer(context.Background(), newTestTransfer(rwtypes.TransferStateFailed))
	assert.Regexp(t, "RW10113", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransferByIDSelectFail(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectQuery("SELECT .*").WillReturnError(fmt.Errorf("pop"))
	_, err := s.GetTransferByID(context.Background(), uuid.New())
	assert.Regexp(t, "RW10115", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransferByIDReadFail(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))
	_, err := s.GetTransferByID(context.Background(), uuid.New())
	assert.Regexp(t, "RW10117", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransferByIDBadAmount(t *testing.T) {
	s, mock := newMockProvider().init()
	cols := append([]string{sequenceColumn}, transferColumns...)
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows(cols).AddRow(
		1, uuid.New().String(), uuid.New().String(), "like_given", 0, "token",
		"0x1111111111111111111111111111111111111111", "0x2222222222222222222222222222222222222222",
		"not a number", "failed", nil, nil, nil, nil, 1, 0, 0,
	))
	_, err := s.GetTransferByID(context.Background(), uuid.New())
	assert.Regexp(t, "RW10117", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransferByIDBadID(t *testing.T) {
	s, mock := newMockProvider().init()
	cols := append([]string{sequenceColumn}, transferColumns...)
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows(cols).AddRow(
		1, "bad", uuid.New().String(), "like_given", 0, "token",
		"0x1111111111111111111111111111111111111111", "0x2222222222222222222222222222222222222222",
		"1", "failed", nil, nil, nil, nil, 1, 0, 0,
	))
	_, err := s.GetTransferByID(context.Background(), uuid.New())
	assert.Regexp(t, "RW10117", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransfersQueryFail(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectQuery("SELECT .*").WillReturnError(fmt.Errorf("pop"))
	_, err := s.GetTransfers(context.Background(), nil)
	assert.Regexp(t, "RW10115", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransfersReadFail(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))
	_, err := s.GetTransfers(context.Background(), nil)
	assert.Regexp(t, "RW10117", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransferStateFailBegin(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectBegin().WillReturnError(fmt.Errorf("pop"))
	err := s.UpdateTransferState(context.Background(), uuid.New(), rwtypes.TransferStateReconciled, nil)
	assert.Regexp(t, "RW10112", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransferStateFailUpdate(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .*").WillReturnError(fmt.Errorf("pop"))
	mock.ExpectRollback()
	err := s.UpdateTransferState(context.Background(), uuid.New(), rwtypes.TransferStateReconciled, nil)
	assert.Regexp(t, "RW10116", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransferStateFailCommit(t *testing.T) {
	s, mock := newMockProvider().init()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(fmt.Errorf("pop"))
	err := s.UpdateTransferState(context.Background(), uuid.New(), rwtypes.TransferStateReconciled, nil)
	assert.Regexp(t, "RW10113", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
