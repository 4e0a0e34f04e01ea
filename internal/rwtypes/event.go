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

package rwtypes

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/i18n"
)

// EventType is the application action that owes (or charges) tokens
type EventType string

const (
	// EventTypeAccountCreated funds a freshly provisioned account
	EventTypeAccountCreated EventType = "account_created"
	// EventTypeLikeGiven rewards both the liker and the liked author
	EventTypeLikeGiven EventType = "like_given"
	// EventTypeAnswerPosted rewards the author of an answer
	EventTypeAnswerPosted EventType = "answer_posted"
	// EventTypeQuestionPosted charges the author of a question
	EventTypeQuestionPosted EventType = "question_posted"
)

// RewardEvent is a persisted domain action handed to the dispatcher.
// Only the fields relevant to the Type are set.
type RewardEvent struct {
	ID        uuid.UUID      `json:"id"`
	Type      EventType      `json:"type"`
	Address   common.Address `json:"address"`
	Giver     common.Address `json:"giver"`
	Receiver  common.Address `json:"receiver"`
	Author    common.Address `json:"author"`
	AuthorKey KeyMaterial    `json:"authorKey,omitempty"`
	Created   time.Time      `json:"created"`
}

func newEvent(t EventType) *RewardEvent {
	return &RewardEvent{
		ID:      uuid.New(),
		Type:    t,
		Created: time.Now().UTC(),
	}
}

func NewAccountCreated(addr common.Address) *RewardEvent {
	e := newEvent(EventTypeAccountCreated)
	e.Address = addr
	return e
}

func NewLikeGiven(giver, receiver common.Address) *RewardEvent {
	e := newEvent(EventTypeLikeGiven)
	e.Giver = giver
	e.Receiver = receiver
	return e
}

func NewAnswerPosted(author common.Address) *RewardEvent {
	e := newEvent(EventTypeAnswerPosted)
	e.Author = author
	return e
}

func NewQuestionPosted(author common.Address, authorKey KeyMaterial) *RewardEvent {
	e := newEvent(EventTypeQuestionPosted)
	e.Author = author
	e.AuthorKey = authorKey
	return e
}

// Validate checks the fields required for the event type are present
func (e *RewardEvent) Validate(ctx context.Context) error {
	if e == nil {
		return i18n.NewError(ctx, i18n.MsgInvalidEvent, "nil")
	}
	if e.ID == uuid.Nil {
		return i18n.NewError(ctx, i18n.MsgInvalidEvent, "id")
	}
	zero := common.Address{}
	switch e.Type {
	case EventTypeAccountCreated:
		if e.Address == zero {
			return i18n.NewError(ctx, i18n.MsgInvalidEvent, "address")
		}
	case EventTypeLikeGiven:
		if e.Giver == zero {
			return i18n.NewError(ctx, i18n.MsgInvalidEvent, "giver")
		}
		if e.Receiver == zero {
			return i18n.NewError(ctx, i18n.MsgInvalidEvent, "receiver")
		}
	case EventTypeAnswerPosted:
		if e.Author == zero {
			return i18n.NewError(ctx, i18n.MsgInvalidEvent, "author")
		}
	case EventTypeQuestionPosted:
		if e.Author == zero {
			return i18n.NewError(ctx, i18n.MsgInvalidEvent, "author")
		}
		if len(e.AuthorKey) == 0 {
			return i18n.NewError(ctx, i18n.MsgMissingKeyMaterial, e.Author.Hex())
		}
	default:
		return i18n.NewError(ctx, i18n.MsgUnknownEventType, e.Type)
	}
	return nil
}
