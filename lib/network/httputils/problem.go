package httputils

import (
	"fmt"
	"net/http"

	"boscoin.io/herehere/lib/errors"
)

// ProblemTypePrefix is prefixed to the error code to make the problem type
// of a coded error.
const ProblemTypePrefix = "https://boscoin.io/herehere/problems/"

// Problem is a RFC7807 problem detail.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
	}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		return NewDetailedStatusProblem(status, err.Error())
	}

	p := Problem{
		Type:   fmt.Sprintf("%s%d", ProblemTypePrefix, e.Code),
		Title:  e.Message,
		Status: status,
		Code:   e.Code,
	}
	if len(e.Data) > 0 {
		p.Data = e.Data
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}
