package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

func TestBucketTake(t *testing.T) {
	b := NewBucket("XRD", common.MustAmountFromDecimalString("100"))

	taken, err := b.Take(common.MustAmountFromDecimalString("69"))
	require.NoError(t, err)
	require.Equal(t, "69", taken.Amount.DecimalString())
	require.Equal(t, "31", b.Amount.DecimalString())
	require.Equal(t, "XRD", taken.Currency)

	_, err = b.Take(common.MustAmountFromDecimalString("32"))
	require.Equal(t, errors.InsufficientPayment.Code, errors.Code(err))
	require.Equal(t, "31", b.Amount.DecimalString())

	all := b.TakeAll()
	require.True(t, b.IsEmpty())
	require.Equal(t, "31", all.Amount.DecimalString())
}

func TestBucketPut(t *testing.T) {
	b := NewBucket("XRD", 10)
	other := NewBucket("XRD", 5)
	require.NoError(t, b.Put(other))
	require.Equal(t, common.Amount(15), b.Amount)
	require.True(t, other.IsEmpty())

	err := b.Put(NewBucket("OTHER", 5))
	require.Equal(t, errors.BucketCurrencyMismatch.Code, errors.Code(err))
	require.Equal(t, common.Amount(15), b.Amount)

	require.NoError(t, b.Put(NewBucket("OTHER", 0)))
}

func TestBucketCheckPayment(t *testing.T) {
	price := common.MustAmountFromDecimalString("6.9")

	require.NoError(t, NewBucket("XRD", price).CheckPayment("XRD", price))

	err := NewBucket("OTHER", price).CheckPayment("XRD", price)
	require.Equal(t, errors.InvalidCurrency.Code, errors.Code(err))

	err = NewBucket("XRD", price-1).CheckPayment("XRD", price)
	require.Equal(t, errors.InsufficientPayment.Code, errors.Code(err))

	var empty *Bucket
	err = empty.CheckPayment("XRD", price)
	require.Equal(t, errors.InvalidCurrency.Code, errors.Code(err))
}

func TestVaultPutAndTakeAll(t *testing.T) {
	v := NewVault("XRD")
	require.Equal(t, common.Amount(0), v.Balance())

	fee := NewBucket("XRD", common.MustAmountFromDecimalString("6.9"))
	require.NoError(t, v.Put(fee))
	require.True(t, fee.IsEmpty())
	require.Equal(t, "6.9", v.Balance().DecimalString())

	err := v.Put(NewBucket("OTHER", 1))
	require.Equal(t, errors.InvalidCurrency.Code, errors.Code(err))
	require.Equal(t, "6.9", v.Balance().DecimalString())

	drained := v.TakeAll()
	require.Equal(t, "6.9", drained.Amount.DecimalString())
	require.Equal(t, common.Amount(0), v.Balance())
}
