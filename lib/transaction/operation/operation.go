package operation

import (
	"encoding/json"
	"reflect"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
)

type OperationType string

const (
	TypeCreateProposal   OperationType = "create-proposal"
	TypeVote             OperationType = "vote"
	TypeFinalizeProposal OperationType = "finalize-proposal"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeCreateProposal),
		string(TypeVote),
		string(TypeFinalizeProposal),
	}, oType)
	return b
}

type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case CreateProposal:
		t = TypeCreateProposal
	case Vote:
		t = TypeVote
	case FinalizeProposal:
		t = TypeFinalizeProposal
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

// MustNewOperation is `NewOperation` for the bodies defined in this
// package, which never fails.
func MustNewOperation(opb Body) Operation {
	op, err := NewOperation(opb)
	if err != nil {
		panic(err)
	}

	return op
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that this operation is self consistent
	//
	// The content rules of the ledger, like empty title, are not checked
	// here; the ledger rejects them when the operation is applied.
	//
	IsWellFormed(common.Config) error
}

// Targetable is the operation which aims an existing proposal.
type Targetable interface {
	TargetProposal() uint64
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	return o.B.IsWellFormed(conf)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, errors.InvalidOperation.Clone().SetData("error", err.Error())
	} else {
		// No other way to go from interface-to-pointer to interface-to-value
		// because values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeCreateProposal:
		return &CreateProposal{}, nil
	case TypeVote:
		return &Vote{}, nil
	case TypeFinalizeProposal:
		return &FinalizeProposal{}, nil
	default:
		return nil, errors.UnknownOperationType.Clone().SetData("type", string(ty))
	}
}
