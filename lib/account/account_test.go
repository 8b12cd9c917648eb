package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metadata"
	"boscoin.io/herehere/lib/vault"
)

func TestAccountVirtual(t *testing.T) {
	l, _ := ledger.NewTestLedger(time.Unix(1000, 0))
	kp := keypair.Random()

	err := l.View(func(tx *ledger.Tx) error {
		ac, err := Load(tx, kp.Address())
		require.NoError(t, err)
		require.True(t, ac.Virtual)
		require.Equal(t, credential.Require(kp.Address()), ac.Owner)

		rule, err := OwnerRule(tx, kp.Address())
		require.NoError(t, err)
		require.Equal(t, credential.Require(kp.Address()), rule)

		_, err = Load(tx, "account_unknown")
		require.Equal(t, errors.AccountNotFound.Code, errors.Code(err))

		_, err = Load(tx, kp.Seed())
		require.Equal(t, errors.AccountNotFound.Code, errors.Code(err))
		return nil
	})
	require.NoError(t, err)
}

func TestAccountDepositAndWithdraw(t *testing.T) {
	l, _ := ledger.NewTestLedger(time.Unix(1000, 0))
	kp := keypair.Random()

	err := l.Execute(nil, func(tx *ledger.Tx) error {
		ac, err := Load(tx, kp.Address())
		require.NoError(t, err)

		require.NoError(t, ac.Deposit(vault.NewBucket("XRD", common.MustAmountFromDecimalString("100"))))
		return ac.Save(tx)
	})
	require.NoError(t, err)

	err = l.Execute(nil, func(tx *ledger.Tx) error {
		ac, err := Load(tx, kp.Address())
		require.NoError(t, err)
		require.False(t, ac.Virtual)
		require.Equal(t, "100", ac.Balance("XRD").DecimalString())

		b, err := ac.Withdraw("XRD", common.MustAmountFromDecimalString("69"))
		require.NoError(t, err)
		require.Equal(t, "69", b.Amount.DecimalString())
		require.Equal(t, "31", ac.Balance("XRD").DecimalString())

		_, err = ac.Withdraw("XRD", common.MustAmountFromDecimalString("32"))
		require.Equal(t, errors.AccountBalanceUnderZero.Code, errors.Code(err))

		_, err = ac.Withdraw("OTHER", 1)
		require.Equal(t, errors.AccountBalanceUnderZero.Code, errors.Code(err))
		return ac.Save(tx)
	})
	require.NoError(t, err)
}

func TestAccountCreateAndSetOwner(t *testing.T) {
	l, _ := ledger.NewTestLedger(time.Unix(1000, 0))
	owner := keypair.Random()
	ownerProofs := []credential.Proof{{Address: owner.Address()}}

	var address string
	err := l.Execute(nil, func(tx *ledger.Tx) error {
		ac, err := Create(tx, credential.AllowAll())
		require.NoError(t, err)
		require.True(t, ledger.IsAccountAddress(ac.Address))
		address = ac.Address

		require.NoError(t, ac.SetMetadata(nil, metadata.KeyAccountType, "dapp definition"))
		require.NoError(t, ac.SetOwner(nil, credential.Require(owner.Address()), true))
		return ac.Save(tx)
	})
	require.NoError(t, err)

	err = l.Execute(nil, func(tx *ledger.Tx) error {
		ac, err := Load(tx, address)
		require.NoError(t, err)
		require.True(t, ac.OwnerLocked)

		e, _ := ac.Metadata.Get(metadata.KeyAccountType)
		require.Equal(t, "dapp definition", e.Value())

		err = ac.SetMetadata(nil, metadata.KeyName, "anyone")
		require.Equal(t, errors.Unauthorized.Code, errors.Code(err))
		require.NoError(t, ac.SetMetadata(ownerProofs, metadata.KeyName, "owner"))

		err = ac.SetOwner(ownerProofs, credential.AllowAll(), false)
		require.Equal(t, errors.Unauthorized.Code, errors.Code(err))
		return nil
	})
	require.NoError(t, err)
}

func TestAccountProvision(t *testing.T) {
	l, _ := ledger.NewTestLedger(time.Unix(1000, 0))
	kp := keypair.Random()

	err := l.Execute(nil, func(tx *ledger.Tx) error {
		_, err := Provision(tx, kp.Address())
		require.NoError(t, err)

		_, err = Provision(tx, kp.Address())
		require.Equal(t, errors.StorageRecordAlreadyExists, err)

		_, err = Provision(tx, "not-a-key")
		require.Equal(t, errors.InvalidAddress.Code, errors.Code(err))

		exists, err := Exists(tx, kp.Address())
		require.NoError(t, err)
		require.True(t, exists)
		return nil
	})
	require.NoError(t, err)
}
