package errors

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
)

type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func (o *Error) Serialize() (b []byte, err error) {
	b, err = json.Marshal(o)
	return
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

// Is reports whether target carries the same code, so a cloned error with
// extra `Data` still matches its predefined value.
func (o *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || o == nil || t == nil {
		return false
	}
	return o.Code == t.Code
}

func (o *Error) SetData(k string, v interface{}) *Error {
	if o.Data == nil {
		o.Data = map[string]interface{}{}
	}
	o.Data[k] = v

	return o
}

func (o *Error) Clone() *Error {
	var new Error
	new = *o

	new.Data = map[string]interface{}{}
	for k, v := range o.Data {
		new.Data[k] = v
	}

	return &new
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

// New makes an uncoded error; it is reported with code 0.
func New(message string) *Error {
	return NewError(0, message)
}

// Code returns the code of a coded error, or 0 for any other error. Errors
// wrapped by `github.com/pkg/errors` are unwrapped first.
func Code(err error) uint {
	if e, ok := pkgerrors.Cause(err).(*Error); ok {
		return e.Code
	}
	return 0
}

// Wrap annotates err, keeping its code reachable through `Code`.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}
