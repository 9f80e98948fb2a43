package runner

import (
	"time"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/storage"
)

var networkID []byte = []byte("minidao-test-network")

// MakeNodeRunnerForTesting makes the node runner over a new memory storage;
// the genesis funds every returned keypair with one coin.
func MakeNodeRunnerForTesting(funded int) (*NodeRunner, []*keypair.Full) {
	st := storage.NewTestStorage()

	kps := keypair.RandomMany(funded)
	var accounts []block.BlockAccount
	for _, kp := range kps {
		accounts = append(accounts, *block.NewBlockAccount(kp.Address(), common.AmountPerCoin))
	}
	if _, err := block.MakeGenesisBlock(st, accounts...); err != nil {
		panic(err)
	}

	conf := common.NewConfig(networkID)
	conf.BlockTime = 10 * time.Millisecond

	nr, err := NewNodeRunner(st, conf)
	if err != nil {
		panic(err)
	}

	return nr, kps
}
