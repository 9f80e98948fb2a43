package governance

import (
	"encoding/json"

	"boscoin.io/minidao/lib/errors"
)

type EventType string

const (
	EventProposalCreated   EventType = "proposal-created"
	EventVoteSubmitted     EventType = "vote-submitted"
	EventProposalFinalized EventType = "proposal-finalized"
)

// Event is emitted by the mutating operations of `Ledger`. The events are
// returned to the caller and published by it after the state is
// committed.
type Event interface {
	Type() EventType
	ProposalID() uint64
	Serialize() ([]byte, error)
}

type ProposalCreated struct {
	ID              uint64 `json:"id"`
	Proposer        string `json:"proposer"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CreatedAtHeight uint64 `json:"created_at_height"`
}

func (e ProposalCreated) Type() EventType    { return EventProposalCreated }
func (e ProposalCreated) ProposalID() uint64 { return e.ID }

func (e ProposalCreated) Serialize() ([]byte, error) {
	return marshalEvent(e.Type(), e)
}

type VoteSubmitted struct {
	ID       uint64 `json:"id"`
	Voter    string `json:"voter"`
	Choice   bool   `json:"choice"`
	YesVotes uint64 `json:"yes_votes"`
	NoVotes  uint64 `json:"no_votes"`
}

func (e VoteSubmitted) Type() EventType    { return EventVoteSubmitted }
func (e VoteSubmitted) ProposalID() uint64 { return e.ID }

func (e VoteSubmitted) Serialize() ([]byte, error) {
	return marshalEvent(e.Type(), e)
}

type ProposalFinalized struct {
	ID       uint64 `json:"id"`
	Passed   bool   `json:"passed"`
	YesVotes uint64 `json:"yes_votes"`
	NoVotes  uint64 `json:"no_votes"`
}

func (e ProposalFinalized) Type() EventType    { return EventProposalFinalized }
func (e ProposalFinalized) ProposalID() uint64 { return e.ID }

func (e ProposalFinalized) Serialize() ([]byte, error) {
	return marshalEvent(e.Type(), e)
}

type eventEnvelop struct {
	Type EventType   `json:"type"`
	Body interface{} `json:"body"`
}

func marshalEvent(t EventType, body interface{}) ([]byte, error) {
	return json.Marshal(eventEnvelop{Type: t, Body: body})
}

// UnmarshalEventJSON decodes the event serialized by `Event.Serialize`.
func UnmarshalEventJSON(b []byte) (Event, error) {
	var raw json.RawMessage
	envelop := eventEnvelop{Body: &raw}
	if err := json.Unmarshal(b, &envelop); err != nil {
		return nil, err
	}

	var err error
	switch envelop.Type {
	case EventProposalCreated:
		var e ProposalCreated
		err = json.Unmarshal(raw, &e)
		return e, err
	case EventVoteSubmitted:
		var e VoteSubmitted
		err = json.Unmarshal(raw, &e)
		return e, err
	case EventProposalFinalized:
		var e ProposalFinalized
		err = json.Unmarshal(raw, &e)
		return e, err
	default:
		return nil, errors.BadRequestParameter.Clone().SetData("event", string(envelop.Type))
	}
}
