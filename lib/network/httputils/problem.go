package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/minidao/lib/errors"
)

const ProblemTypeBase = "https://boscoin.io/minidao/problems"

// Problem is the RFC 7807 problem detail. For the `errors.Error`, `Type`
// ends with the error code and the code and data are added as extension
// members.
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
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	if e, ok := err.(*errors.Error); ok {
		return Problem{
			Type:   fmt.Sprintf("%s/%d", ProblemTypeBase, e.Code),
			Title:  e.Message,
			Status: status,
			Code:   e.Code,
			Data:   e.Data,
		}
	}

	return NewDetailedStatusProblem(status, err.Error())
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
