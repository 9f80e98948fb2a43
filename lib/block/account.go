package block

import (
	"encoding/json"
	"fmt"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/storage"
)

// BlockAccount is account model in block. the storage should support,
//  * find by `Address`:
// 	- key: `Address`: value: `ID` of BlockAccount
//  * get list by created order:
//
// models
//  * 'address'
// 	- 'ba-address-<BlockAccount.Address>': `BlockAccount`
//  * 'created'
// 	- 'ba-created-<sequential uuid1>': `BlockAccount.Address`

const BlockAccountPrefixAddress string = "ba-address-"
const BlockAccountPrefixCreated string = "ba-created-"

type BlockAccount struct {
	Address    string        `json:"address"`
	Balance    common.Amount `json:"balance"`
	SequenceID uint64        `json:"sequence_id"`
}

func NewBlockAccount(address string, balance common.Amount) *BlockAccount {
	return &BlockAccount{
		Address:    address,
		Balance:    balance,
		SequenceID: 0,
	}
}

func (b *BlockAccount) String() string {
	return string(common.MustMarshalJSON(b))
}

func (b *BlockAccount) Save(st *storage.LevelDBBackend) (err error) {
	key := GetBlockAccountKey(b.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		return st.Set(key, b)
	}

	if err = st.New(key, b); err != nil {
		return
	}
	createdKey := GetBlockAccountCreatedKey(common.GetUniqueIDFromUUID())
	if err = st.New(createdKey, b.Address); err != nil {
		return
	}

	log.Debug("new account saved", "address", b.Address, "balance", b.Balance)

	return
}

func (b *BlockAccount) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(b)
	return
}

func (b *BlockAccount) GetBalance() common.Amount {
	return b.Balance
}

func (b *BlockAccount) Deposit(fund common.Amount) (err error) {
	var n common.Amount
	if n, err = b.Balance.Add(fund); err != nil {
		return
	}
	b.Balance = n

	return
}

func (b *BlockAccount) Withdraw(fund common.Amount) (err error) {
	var n common.Amount
	if n, err = b.Balance.Sub(fund); err != nil {
		return
	}
	b.Balance = n

	return
}

// IncreaseSequenceID is called once a transaction of this account is
// applied.
func (b *BlockAccount) IncreaseSequenceID() {
	b.SequenceID++
}

func GetBlockAccountKey(address string) string {
	return fmt.Sprintf("%s%s", BlockAccountPrefixAddress, address)
}

func GetBlockAccountCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", BlockAccountPrefixCreated, created)
}

func ExistsBlockAccount(st *storage.LevelDBBackend, address string) (exists bool, err error) {
	return st.Has(GetBlockAccountKey(address))
}

func GetBlockAccount(st *storage.LevelDBBackend, address string) (b *BlockAccount, err error) {
	b = &BlockAccount{}
	if err = st.Get(GetBlockAccountKey(address), b); err != nil {
		return nil, err
	}

	return
}

func GetBlockAccountAddressesByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (func() (string, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(BlockAccountPrefixCreated, options)

	return (func() (string, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", false
			}

			var address string
			json.Unmarshal(item.Value, &address)
			return address, hasNext
		}), (func() {
			closeFunc()
		})
}
