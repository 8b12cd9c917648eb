package operation

import (
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
)

// checkIdentity accepts public keys and allocated accounts.
func checkIdentity(field, address string) error {
	if keypair.IsValidAddress(address) || ledger.IsAccountAddress(address) {
		return nil
	}
	return errors.InvalidAddress.Clone().SetData(field, address)
}

func checkComponent(field, address string) error {
	if ledger.IsComponentAddress(address) && len(address) > len(ledger.ComponentAddressPrefix) {
		return nil
	}
	return errors.InvalidAddress.Clone().SetData(field, address)
}
