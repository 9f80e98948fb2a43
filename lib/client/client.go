package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/transaction"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlNodeInfo          = "/"
	UrlProposals         = "/proposals"
	UrlProposal          = "/proposals/{id}"
	UrlProposalVotes     = "/proposals/{id}/votes"
	UrlProposalVoter     = "/proposals/{id}/voters/{address}"
	UrlAccount           = "/accounts/{id}"
	UrlBlock             = "/blocks/{height}"
	UrlTransactions      = "/transactions"
	UrlTransactionByHash = "/transactions/{id}"
	UrlSubscribe         = "/subscribe"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

type Client struct {
	URL string

	HTTP *HTTP2Client
}

func NewClient(url string) *Client {
	httpClient, err := NewHTTP2Client(10*time.Second, DefaultRetrySetting)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return
		}
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	return c.HTTP.Get(c.URL+UrlPrefixForAPIV1+path, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	return c.HTTP.Post(c.URL+UrlPrefixForAPIV1+path, body, headers)
}

func (c *Client) load(path string, response interface{}) (err error) {
	headers := http.Header{}
	headers.Set("Accept", "application/hal+json")

	var resp *http.Response
	if resp, err = c.Get(path, headers); err != nil {
		return
	}
	return c.toResponse(resp, response)
}

func proposalPath(url string, id uint64) string {
	return strings.Replace(url, "{id}", strconv.FormatUint(id, 10), -1)
}

func (c *Client) LoadNodeInfo() (info NodeInfo, err error) {
	err = c.load(UrlNodeInfo, &info)
	return
}

func (c *Client) LoadProposal(id uint64) (proposal Proposal, err error) {
	err = c.load(proposalPath(UrlProposal, id), &proposal)
	return
}

func (c *Client) LoadProposals(queries ...Q) (page ProposalsPage, err error) {
	err = c.load(UrlProposals+Queries(queries).toQueryString(), &page)
	return
}

// LoadProposalsByLink follows the `next` or `prev` link of the page.
func (c *Client) LoadProposalsByLink(link Link) (page ProposalsPage, err error) {
	err = c.load(strings.TrimPrefix(link.Href, UrlPrefixForAPIV1), &page)
	return
}

func (c *Client) LoadVoteCounts(id uint64) (counts VoteCounts, err error) {
	err = c.load(proposalPath(UrlProposalVotes, id), &counts)
	return
}

func (c *Client) LoadVoter(id uint64, address string) (voter Voter, err error) {
	url := strings.Replace(proposalPath(UrlProposalVoter, id), "{address}", address, -1)
	err = c.load(url, &voter)
	return
}

func (c *Client) LoadAccount(address string) (account Account, err error) {
	err = c.load(strings.Replace(UrlAccount, "{id}", address, -1), &account)
	return
}

func (c *Client) LoadBlock(height uint64) (blk Block, err error) {
	err = c.load(strings.Replace(UrlBlock, "{height}", strconv.FormatUint(height, 10), -1), &blk)
	return
}

func (c *Client) LoadTransaction(hash string) (tx Transaction, err error) {
	err = c.load(strings.Replace(UrlTransactionByHash, "{id}", hash, -1), &tx)
	return
}

// SubmitTransaction posts the signed transaction; the receipt is returned
// when it is applied to the ledger.
func (c *Client) SubmitTransaction(tx transaction.Transaction) (receipt Transaction, err error) {
	var body []byte
	if body, err = tx.Serialize(); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.Post(UrlTransactions, body, headers); err != nil {
		return
	}
	err = c.toResponse(resp, &receipt)
	return
}

// Subscribe calls handler with the data of each server-sent event matched
// by the conditions until ctx is done or handler returns error.
func (c *Client) Subscribe(ctx context.Context, conditions []observer.Conditions, handler func(data []byte) error) (err error) {
	var body []byte
	if body, err = json.Marshal(conditions); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Accept", "text/event-stream")
	headers.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.HTTP.PostStream(ctx, c.URL+UrlPrefixForAPIV1+UrlSubscribe, body, headers); err != nil {
		return
	}
	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}
	defer resp.Body.Close()

	prefix := []byte("data: ")
	reader := bufio.NewReader(resp.Body)
	for {
		var line []byte
		if line, err = reader.ReadBytes('\n'); err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return
			}
		}

		if !bytes.HasPrefix(line, prefix) {
			continue
		}
		if err = handler(bytes.TrimSpace(line[len(prefix):])); err != nil {
			return
		}
	}
}
