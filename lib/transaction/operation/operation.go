package operation

import (
	"encoding/json"
	"reflect"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

type OperationType string

const (
	TypeInstantiateRegistry OperationType = "instantiate-registry"
	TypeCreatePoll          OperationType = "create-poll"
	TypeVote                OperationType = "vote"
	TypeWithdrawFee         OperationType = "withdraw-fee"
	TypeUpdateCost          OperationType = "update-cost"
	TypeTransfer            OperationType = "transfer"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeInstantiateRegistry),
		string(TypeCreatePoll),
		string(TypeVote),
		string(TypeWithdrawFee),
		string(TypeUpdateCost),
		string(TypeTransfer),
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
	case InstantiateRegistry:
		t = TypeInstantiateRegistry
	case CreatePoll:
		t = TypeCreatePoll
	case Vote:
		t = TypeVote
	case WithdrawFee:
		t = TypeWithdrawFee
	case UpdateCost:
		t = TypeUpdateCost
	case Transfer:
		t = TypeTransfer
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
	// Params:
	//   config = Network configuration
	//
	// Returns:
	//   An `error` if that operation is invalid, `nil` otherwise
	//
	IsWellFormed(common.Config) error
}

// Payable operations are paid from the balance of the transaction source.
type Payable interface {
	Body
	GetCurrency(common.Config) string
	GetAmount() common.Amount
}

// Targetable operations act on a component.
type Targetable interface {
	TargetAddress() string
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
		return nil, err
	} else {
		// No other way to go from interface-to-pointer to interface-to-value
		// because values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeInstantiateRegistry:
		return &InstantiateRegistry{}, nil
	case TypeCreatePoll:
		return &CreatePoll{}, nil
	case TypeVote:
		return &Vote{}, nil
	case TypeWithdrawFee:
		return &WithdrawFee{}, nil
	case TypeUpdateCost:
		return &UpdateCost{}, nil
	case TypeTransfer:
		return &Transfer{}, nil
	default:
		return nil, errors.UnknownOperationType.Clone().SetData("type", string(ty))
	}
}
