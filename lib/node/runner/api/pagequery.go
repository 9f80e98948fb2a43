package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/node/runner/api/resource"
	"boscoin.io/minidao/lib/storage"
)

const (
	DefaultLimit uint64 = 20
	MaxLimit     uint64 = 100
)

// PageQuery parses `cursor`, `limit` and `reverse` of the list request.
// The cursor is the storage key of the last record, base64 encoded.
type PageQuery struct {
	request *http.Request
	cursor  []byte
	reverse bool
	limit   uint64
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	p := &PageQuery{
		request: r,
		limit:   DefaultLimit,
	}
	err := p.parseRequest()
	return p, err
}

func (p *PageQuery) Limit() uint64 {
	return p.limit
}

func (p *PageQuery) Reverse() bool {
	return p.reverse
}

func (p *PageQuery) Cursor() []byte {
	return p.cursor
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) PrevLink(cursor []byte) string {
	path := p.request.URL.Path
	query := p.urlValues(cursor, !p.reverse).Encode()
	return fmt.Sprintf("%s?%s", path, query)
}

func (p *PageQuery) NextLink(cursor []byte) string {
	path := p.request.URL.Path
	query := p.urlValues(cursor, p.reverse).Encode()
	return fmt.Sprintf("%s?%s", path, query)
}

func (p *PageQuery) ListOptions() storage.ListOptions {
	return storage.NewDefaultListOptions(p.Reverse(), p.Cursor(), p.Limit())
}

func (p *PageQuery) ResourceList(rs []resource.Resource, firstCursor, lastCursor []byte) *resource.ResourceList {
	var prev string
	if len(firstCursor) > 0 {
		prev = p.PrevLink(firstCursor)
	}
	return resource.NewResourceList(rs, p.SelfLink(), p.NextLink(lastCursor), prev)
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	r := q.Get("reverse")
	if r != "" {
		reverse, err := common.ParseBoolQueryString(r)
		if err != nil {
			return err
		}
		p.reverse = reverse
	}

	if c := q.Get("cursor"); c != "" {
		bs, err := base64.StdEncoding.DecodeString(c)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("cursor", c)
		}
		p.cursor = bs
	}

	if l := q.Get("limit"); l != "" {
		limit, err := common.ParseUint64QueryString(l)
		if err != nil {
			return err
		}
		if limit > MaxLimit {
			return errors.PageQueryLimitMaxExceed.Clone().SetData("max", MaxLimit)
		}
		if limit > 0 {
			p.limit = limit
		}
	}

	return nil
}

func (p PageQuery) urlValues(cursor []byte, reverse bool) url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(reverse)},
	}

	if len(cursor) > 0 {
		v.Set("cursor", base64.StdEncoding.EncodeToString(cursor))
	}
	if p.limit > 0 {
		v.Set("limit", strconv.FormatUint(p.limit, 10))
	}

	return v
}
