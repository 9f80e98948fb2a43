package observer

import (
	"strings"

	"github.com/GianlucaGuarini/go-observable"
)

// ResourceObserver publishes the events of the governance ledger and the
// newly closed blocks; the payload is the event or the block itself.
var ResourceObserver = observable.New()

const (
	ResourceProposal = "proposal"
	ResourceBlock    = "block"

	ConditionAll      = "*"
	ConditionType     = "type"
	ConditionID       = "id"
	ConditionAddress  = "address"
	conditionSplitter = "="
)

type Condition struct {
	Resource string `json:"resource"`
	Key      string `json:"key"`
	Value    string `json:"value,omitempty"`
}

func NewCondition(resource, key string, values ...string) Condition {
	c := Condition{
		Resource: resource,
		Key:      key,
	}
	if len(values) > 0 {
		c.Value = values[0]
	}

	return c
}

// Event returns the event name of observable, ie. "proposal-*",
// "proposal-id=1".
func (c Condition) Event() string {
	if c.Key == ConditionAll || c.Key == "" {
		return c.Resource + "-" + ConditionAll
	}

	return c.Resource + "-" + c.Key + conditionSplitter + c.Value
}

func (c Condition) String() string {
	return c.Event()
}

type Conditions []Condition

// Event joins the event names; the observable callback of them is called
// when any of them is triggered.
func (cs Conditions) Event() string {
	var events []string
	for _, c := range cs {
		events = append(events, c.Event())
	}

	return strings.Join(events, " ")
}
