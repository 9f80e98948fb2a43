package api

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/GianlucaGuarini/go-observable"
	lru "github.com/hashicorp/golang-lru"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/node/runner/api/resource"
)

// recentMessageSize is the number of message ids an event stream remembers
// to drop the message triggered under more than one subscribed event.
const recentMessageSize = 256

// Message is what is triggered to `observer.ResourceObserver`; the same
// message is triggered once per matching event name.
type Message struct {
	ID       string
	Resource interface{}
}

func NewMessage(r interface{}) Message {
	return Message{ID: common.GenerateUUID(), Resource: r}
}

func (api NetworkHandlerAPI) PostSubscribeHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if !httputils.IsEventStream(r) {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("accept", httputils.ContentTypeEventStream))
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}
	var requestParams []observer.Conditions
	if err := json.Unmarshal(body, &requestParams); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}
	if len(requestParams) < 1 {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", "empty conditions"))
		return
	}

	var events []string
	for _, conditions := range requestParams {
		events = append(events, conditions.Event())
	}

	es := NewEventStream(w, r, RenderResourceFunc, httputils.ContentTypeEventStream)
	run := es.Start(observer.ResourceObserver, events...)
	es.Render(nil)
	run()
}

// RenderResourceFunc renders the governance event as is and the block as
// its resource.
var RenderResourceFunc = func(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}

	switch v := args[1].(type) {
	case nil:
		return nil, nil
	case governance.Event:
		return v.Serialize()
	case block.Block:
		return json.Marshal(resource.NewBlock(&v).Resource())
	default:
		return json.Marshal(v)
	}
}

// EventStream handles chunked responses of a observable trigger
//
// renderFunc uses on observable.On() and Render function
type EventStream struct {
	contentType string
	renderFunc  RenderFunc
	request     *http.Request
	writer      http.ResponseWriter
	flusher     http.Flusher
	err         error
	rendered    bool
	stop        chan struct{}
	recent      *lru.Cache
}

type RenderFunc func(args ...interface{}) ([]byte, error)

// NewEventStream makes *EventStream and checks http.Flusher by type assertion.
func NewEventStream(w http.ResponseWriter, r *http.Request, renderFunc RenderFunc, ct string) *EventStream {
	recent, _ := lru.New(recentMessageSize)
	es := &EventStream{
		request:     r,
		writer:      w,
		renderFunc:  renderFunc,
		contentType: ct,
		recent:      recent,
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		es.err = fmt.Errorf("http: can't do chunked response ")
	} else {
		es.flusher = flusher
	}

	return es
}

// Render writes the first message and flushes it; the empty payload is
// written as a comment.
func (s *EventStream) Render(args ...interface{}) {
	if s.err != nil {
		return
	}

	var bs []byte
	var renderArgs []interface{}
	renderArgs = append(renderArgs, "pre")
	renderArgs = append(renderArgs, args...)
	if payload, err := s.renderFunc(renderArgs...); err != nil {
		bs = s.errMessage(err)
	} else {
		bs = payload
	}

	if !s.rendered {
		s.writer.Header().Set("Content-Type", s.contentType)
		s.writer.Header().Set("Cache-Control", "no-cache")
		s.rendered = true
	}

	s.write("", bs)
}

// Run start observing events.
//
// Simple use case:
//
// 	event := observer.NewCondition(observer.ResourceProposal, observer.ConditionID, "1").Event()
// 	es := NewEventStream(w, r, RenderResourceFunc, httputils.ContentTypeEventStream)
// 	es.Render(nil)
// 	es.Run(observer.ResourceObserver, event)
func (s *EventStream) Run(ob *observable.Observable, events ...string) {
	s.Start(ob, events...)()
}

// Start prepares for observing events and returns run func.
//
// In most case, Use Run instead of Start
func (s *EventStream) Start(ob *observable.Observable, events ...string) func() {
	if s.err != nil {
		return func() {}
	}

	type chunk struct {
		id      string
		payload []byte
	}

	event := strings.Join(events, " ")
	msg := make(chan chunk)
	s.stop = make(chan struct{})

	onFunc := func(args ...interface{}) {
		var c chunk

		// listening to several events, the observable passes the name of
		// the triggered event first.
		name := event
		var v interface{}
		if len(args) > 1 {
			if n, ok := args[0].(string); ok {
				name = n
			}
			v = args[1]
		} else if len(args) == 1 {
			v = args[0]
		}
		if m, ok := v.(Message); ok {
			if found, _ := s.recent.ContainsOrAdd(m.ID, struct{}{}); found {
				return
			}
			c.id = m.ID
			v = m.Resource
		}

		payload, err := s.renderFunc(name, v)
		if err != nil {
			payload = s.errMessage(err)
		}
		c.payload = payload

		select {
		case msg <- c:
		case <-s.stop:
			return
		}
	}
	ob.On(event, onFunc)

	return func() {
		defer ob.Off(event, onFunc)

		for {
			select {
			case c := <-msg:
				s.write(c.id, c.payload)
			case <-s.request.Context().Done():
				close(s.stop)
				return
			}
		}
	}
}

func (s *EventStream) write(id string, payload []byte) {
	if len(payload) < 1 {
		fmt.Fprint(s.writer, ":\n\n")
	} else {
		if id != "" {
			fmt.Fprintf(s.writer, "id: %s\n", id)
		}
		fmt.Fprintf(s.writer, "data: %s\n\n", payload)
	}
	s.flusher.Flush()
}

func (s *EventStream) errMessage(err error) []byte {
	p := httputils.NewErrorProblem(err, httputils.StatusCode(err))
	b, err := json.Marshal(p)
	if err != nil {
		b = []byte{}
	}
	return b
}
