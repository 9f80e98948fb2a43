package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GianlucaGuarini/go-observable"
	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/governance"
)

// readData returns the payload of the next `data:` line.
func readData(t *testing.T, reader *bufio.Reader) []byte {
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			return []byte(strings.TrimSpace(strings.TrimPrefix(line, "data: ")))
		}
	}
}

func subscribe(t *testing.T, ts *httptest.Server, conditions ...observer.Conditions) (*bufio.Reader, func()) {
	b, err := json.Marshal(conditions)
	require.NoError(t, err)

	resp, err := request(ts, PostSubscribePattern, true, b)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// first comment is flushed once the subscription is ready
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, ":\n", line)

	return reader, func() { resp.Body.Close() }
}

func TestProposalStream(t *testing.T) {
	ta := prepareAPIServer()
	defer ta.Close()

	reader, closeFunc := subscribe(
		t,
		ta.server,
		observer.Conditions{observer.NewCondition(observer.ResourceProposal, observer.ConditionAll)},
		observer.Conditions{observer.NewCondition(observer.ResourceProposal, observer.ConditionID, "1")},
	)
	defer closeFunc()

	proposer := keypair.Random()
	resp, err := postTransaction(ta.server, makeOperationTx(proposer, 0, operationCreateProposal()))
	require.NoError(t, err)
	resp.Body.Close()

	TriggerEvent([]governance.Event{governance.VoteSubmitted{ID: 1, Voter: proposer.Address(), Choice: true, YesVotes: 1}})

	{
		e, err := governance.UnmarshalEventJSON(readData(t, reader))
		require.NoError(t, err)
		created, ok := e.(governance.ProposalCreated)
		require.True(t, ok)
		require.Equal(t, proposer.Address(), created.Proposer)
	}

	{ // the created event matched two conditions, but it is sent once
		e, err := governance.UnmarshalEventJSON(readData(t, reader))
		require.NoError(t, err)
		require.Equal(t, governance.EventVoteSubmitted, e.Type())
	}
}

func TestStreamByEventType(t *testing.T) {
	ta := prepareAPIServer()
	defer ta.Close()

	reader, closeFunc := subscribe(
		t,
		ta.server,
		observer.Conditions{observer.NewCondition(observer.ResourceProposal, observer.ConditionType, string(governance.EventProposalFinalized))},
	)
	defer closeFunc()

	TriggerEvent([]governance.Event{
		governance.ProposalCreated{ID: 7},
		governance.ProposalFinalized{ID: 7, Passed: false},
	})

	e, err := governance.UnmarshalEventJSON(readData(t, reader))
	require.NoError(t, err)
	require.Equal(t, governance.EventProposalFinalized, e.Type())
	require.Equal(t, uint64(7), e.ProposalID())
}

func TestBlockStream(t *testing.T) {
	ta := prepareAPIServer()
	defer ta.Close()

	reader, closeFunc := subscribe(
		t,
		ta.server,
		observer.Conditions{observer.NewCondition(observer.ResourceBlock, observer.ConditionAll)},
	)
	defer closeFunc()

	genesis, err := block.GetGenesis(ta.storage)
	require.NoError(t, err)
	blk := block.NewBlock(genesis.Height+1, genesis, nil, common.NowISO8601())
	TriggerBlock(blk)

	var recv map[string]interface{}
	require.NoError(t, json.Unmarshal(readData(t, reader), &recv))
	require.Equal(t, blk.Hash, recv["hash"])
}

func TestSubscribeWithoutEventStream(t *testing.T) {
	ta := prepareAPIServer()
	defer ta.Close()

	resp, err := request(ta.server, PostSubscribePattern, false, []byte("[]"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIStreamRun(t *testing.T) {
	ob := observable.New()

	ctx, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest("POST", PostSubscribePattern, nil).WithContext(ctx)
	w := httptest.NewRecorder()

	es := NewEventStream(w, r, RenderResourceFunc, "text/event-stream")
	run := es.Start(ob, "test1")

	done := make(chan struct{})
	go func() {
		run()
		close(done)
	}()

	m := NewMessage(governance.ProposalCreated{ID: 3})
	ob.Trigger("test1", m)
	ob.Trigger("test1", m)
	ob.Trigger("test1", NewMessage(governance.ProposalFinalized{ID: 3}))

	cancel()
	<-done

	body := w.Body.String()
	require.Equal(t, 2, strings.Count(body, "data: "))
	require.Contains(t, body, "id: "+m.ID+"\n")
}

func TestAPIStreamRunSeveralEvents(t *testing.T) {
	ob := observable.New()

	ctx, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest("POST", PostSubscribePattern, nil).WithContext(ctx)
	w := httptest.NewRecorder()

	es := NewEventStream(w, r, RenderResourceFunc, "text/event-stream")
	run := es.Start(ob, "test1", "test2")

	done := make(chan struct{})
	go func() {
		run()
		close(done)
	}()

	created := NewMessage(governance.ProposalCreated{ID: 4, Title: "t"})
	ob.Trigger("test1", created)
	ob.Trigger("test2", created)
	ob.Trigger("test2", NewMessage(governance.VoteSubmitted{ID: 4, Choice: true, YesVotes: 1}))

	cancel()
	<-done

	var types []governance.EventType
	for _, line := range strings.Split(w.Body.String(), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		e, err := governance.UnmarshalEventJSON([]byte(strings.TrimPrefix(line, "data: ")))
		require.NoError(t, err)
		types = append(types, e.Type())
	}
	require.Equal(t, []governance.EventType{governance.EventProposalCreated, governance.EventVoteSubmitted}, types)
}
