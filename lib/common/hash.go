package common

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/argon2"
)

var HashSalt = []byte("herehere")

func MakeHash(b []byte) []byte {
	return argon2.Key(b, HashSalt, 3, 32*1024, 4, 32)
}

// MakeObjectHash hashes the rlp encoding of `i`; rlp has no signed integers,
// so objects with `int` fields go through `MakeJSONHash`.
func MakeObjectHash(i interface{}) (b []byte, err error) {
	var e []byte
	if e, err = rlp.EncodeToBytes(i); err != nil {
		return
	}

	b = MakeHash(e)

	return
}

func MakeJSONHash(i interface{}) (b []byte, err error) {
	var e []byte
	if e, err = EncodeJSONValue(i); err != nil {
		return
	}

	b = MakeHash(e)
	return
}

func MustMakeJSONHashString(i interface{}) string {
	b, err := MakeJSONHash(i)
	if err != nil {
		panic(err)
	}
	return base58.Encode(b)
}
