package block

import (
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
)

func TestMakeBlockAccount(balance common.Amount) *BlockAccount {
	kp := keypair.Random()

	return NewBlockAccount(kp.Address(), balance)
}
