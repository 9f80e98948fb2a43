package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/minidao/lib/node"
)

type NodeInfo struct {
	info node.NodeInfo
}

func NewNodeInfo(info node.NodeInfo) *NodeInfo {
	return &NodeInfo{info: info}
}

func (n NodeInfo) GetMap() hal.Entry {
	return hal.Entry{
		"node":       n.info.Node,
		"policy":     n.info.Policy,
		"block":      n.info.Block,
		"governance": n.info.Governance,
	}
}

func (n NodeInfo) Resource() *hal.Resource {
	r := hal.NewResource(n, n.LinkSelf())
	r.AddLink("proposals", hal.NewLink(URLProposals+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("subscribe", hal.NewLink(URLSubscribe))
	return r
}

func (n NodeInfo) LinkSelf() string {
	return URLNodeInfo
}
