//
// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions,
// suited for signing proofs and transactions
//
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Master = stellar.Master
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// MakeSignature makes signature from given hash string
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(append(networkID, []byte(hash)...))
}

// VerifySignature is the counterpart of `MakeSignature`.
func VerifySignature(address string, networkID []byte, hash string, signature []byte) error {
	kp, err := stellar.Parse(address)
	if err != nil {
		return err
	}

	return kp.Verify(append(networkID, []byte(hash)...), signature)
}

// IsValidAddress checks `address` is a public key; seeds are refused.
func IsValidAddress(address string) bool {
	kp, err := stellar.Parse(address)
	if err != nil {
		return false
	}
	_, isFull := kp.(*stellar.Full)
	return !isFull
}
