package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
)

type Block struct {
	b *block.Block
}

func NewBlock(b *block.Block) *Block {
	blk := &Block{
		b: b,
	}
	return blk
}

func (blk Block) GetMap() hal.Entry {
	b := blk.b
	return hal.Entry{
		"hash":         b.Hash,
		"height":       b.Height,
		"prev_hash":    b.PrevHash,
		"confirmed":    b.Confirmed,
		"total_txs":    b.TotalTxs,
		"transactions": b.Transactions,
	}
}

func (blk Block) Resource() *hal.Resource {
	r := hal.NewResource(blk, blk.LinkSelf())
	if blk.b.Height > common.GenesisBlockHeight {
		r.AddLink("prev", hal.NewLink(blockLink(blk.b.Height-1)))
	}
	return r
}

func (blk Block) LinkSelf() string {
	return blockLink(blk.b.Height)
}

func (blk Block) MarshalJSON() ([]byte, error) {
	r := blk.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}

func blockLink(height uint64) string {
	return strings.Replace(URLBlocks, "{height}", strconv.FormatUint(height, 10), -1)
}
