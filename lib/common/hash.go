package common

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/argon2"
)

var HashSalt = []byte("minidao")

// MakeHash is the argon2i key of b with `HashSalt`.
func MakeHash(b []byte) []byte {
	return argon2.Key(b, HashSalt, 3, 32*1024, 4, 32)
}

// MakeObjectHash hashes the RLP encoding of i.
func MakeObjectHash(i interface{}) ([]byte, error) {
	e, err := rlp.EncodeToBytes(i)
	if err != nil {
		return nil, err
	}

	return MakeHash(e), nil
}

func MustMakeObjectHash(i interface{}) []byte {
	b, err := MakeObjectHash(i)
	if err != nil {
		panic(err)
	}

	return b
}

// MustMakeObjectHashString is the base58 form of `MustMakeObjectHash`.
func MustMakeObjectHashString(i interface{}) string {
	return base58.Encode(MustMakeObjectHash(i))
}
