package resource

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/transaction"
)

func toMap(t *testing.T, r Resource) map[string]interface{} {
	j, err := json.MarshalIndent(r.Resource(), "", " ")
	require.NoError(t, err)

	var f interface{}
	common.MustUnmarshalJSON(j, &f)
	return f.(map[string]interface{})
}

func selfLink(m map[string]interface{}) string {
	l := m["_links"].(map[string]interface{})
	return l["self"].(map[string]interface{})["href"].(string)
}

func TestResourceAccount(t *testing.T) {
	ba := block.TestMakeBlockAccount(common.AmountPerCoin)
	ba.SequenceID = 123

	m := toMap(t, NewAccount(ba, true))
	require.Equal(t, ba.Address, m["address"])
	require.Equal(t, ba.SequenceID, uint64(m["sequence_id"].(float64)))
	require.Equal(t, ba.GetBalance().String(), m["balance"])
	require.Equal(t, true, m["can_vote"])
	require.Equal(t, strings.Replace(URLAccounts, "{id}", ba.Address, -1), selfLink(m))
}

func TestResourceProposal(t *testing.T) {
	p := governance.Proposal{
		ID:              3,
		Title:           "title",
		Description:     "description",
		CreatedAtHeight: 10,
		YesVotes:        3,
		NoVotes:         1,
		Proposer:        keypair.Random().Address(),
	}

	{ // in the voting period
		m := toMap(t, NewProposal(p, 15))
		require.Equal(t, float64(3), m["id"])
		require.Equal(t, "title", m["title"])
		require.Equal(t, float64(30), m["end_height"])
		require.Equal(t, float64(15), m["remaining_blocks"])
		require.Equal(t, float64(75), m["yes_percentage"])
		require.Equal(t, float64(25), m["no_percentage"])
		require.Equal(t, false, m["can_finalize"])
		require.Equal(t, "/api/v1/proposals/3", selfLink(m))

		l := m["_links"].(map[string]interface{})
		require.Equal(t, "/api/v1/proposals/3/votes", l["votes"].(map[string]interface{})["href"])
	}

	{ // voting period is over
		m := toMap(t, NewProposal(p, 30))
		require.Equal(t, float64(0), m["remaining_blocks"])
		require.Equal(t, true, m["can_finalize"])
	}

	{ // finalized
		p.Finalized = true
		p.Passed = true
		m := toMap(t, NewProposal(p, 40))
		require.Equal(t, false, m["can_finalize"])
		require.Equal(t, true, m["passed"])
	}
}

func TestResourceVoter(t *testing.T) {
	address := keypair.Random().Address()

	m := toMap(t, NewVoter(1, address, true, false, true))
	require.Equal(t, true, m["has_voted"])
	require.Equal(t, false, m["choice"])
	require.Equal(t, "/api/v1/proposals/1/voters/"+address, selfLink(m))
}

func TestResourceBlockAndTransaction(t *testing.T) {
	genesis := block.NewBlock(common.GenesisBlockHeight, block.Block{}, nil, block.GenesisBlockConfirmedTime)
	blk := block.NewBlock(genesis.Height+1, genesis, []string{"tx"}, common.NowISO8601())

	{
		m := toMap(t, NewBlock(&blk))
		require.Equal(t, blk.Hash, m["hash"])
		require.Equal(t, "/api/v1/blocks/2", selfLink(m))

		l := m["_links"].(map[string]interface{})
		require.Equal(t, "/api/v1/blocks/1", l["prev"].(map[string]interface{})["href"])
	}

	{
		kp := keypair.Random()
		tx := transaction.TestMakeCreateProposal([]byte("test-network"), kp, 0)
		message, err := tx.Serialize()
		require.NoError(t, err)

		event, err := governance.ProposalCreated{ID: 1, Proposer: kp.Address()}.Serialize()
		require.NoError(t, err)

		bt := block.NewBlockTransactionFromTransaction(blk.Height, 0, tx, message, []json.RawMessage{event})
		m := toMap(t, NewTransaction(&bt))
		require.Equal(t, bt.Hash, m["hash"])
		require.Equal(t, kp.Address(), m["source"])
		require.Equal(t, 1, len(m["events"].([]interface{})))
		require.Equal(t, strings.Replace(URLTransactionByHash, "{id}", bt.Hash, -1), selfLink(m))
	}
}

func TestResourceList(t *testing.T) {
	p := governance.Proposal{ID: 1, Proposer: keypair.Random().Address()}
	rl := NewResourceList([]Resource{NewProposal(p, 1)}, URLProposals, URLProposals+"?cursor=next", "")

	j, err := json.Marshal(rl.Resource())
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(j, &m)

	records := m["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Equal(t, 1, len(records))

	l := m["_links"].(map[string]interface{})
	require.Equal(t, URLProposals+"?cursor=next", l["next"].(map[string]interface{})["href"])
	_, found := l["prev"]
	require.False(t, found)
}

func TestResourceListPrevLink(t *testing.T) {
	rl := NewResourceList(nil, URLProposals, URLProposals+"?cursor=b", URLProposals+"?cursor=a")

	j, err := json.Marshal(rl.Resource())
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(j, &m)

	l := m["_links"].(map[string]interface{})
	require.Equal(t, URLProposals+"?cursor=a", l["prev"].(map[string]interface{})["href"])
	require.Equal(t, URLProposals+"?cursor=b", l["next"].(map[string]interface{})["href"])
}
