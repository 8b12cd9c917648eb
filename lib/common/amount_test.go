package common

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/herehere/lib/errors"
)

var (
	maximumBalance    = uint64(MaximumBalance)
	maximumBalanceStr = strconv.FormatUint(maximumBalance, 10)
)

func TestAmount_Invariant(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("exceeds max allowable amount value.")
		}
	}()

	amount := Amount(maximumBalance + 1)
	amount.Invariant()
}

func TestAmount_Mult(t *testing.T) {
	require.Equal(t, Amount(5000), Amount(100).MustMult(50))

	_, err := MaximumBalance.MultInt(2)
	require.Equal(t, errors.MaximumBalanceReached, err)

	_, err = Amount(42).MultInt(-42)
	require.Error(t, err)

	zero, err := Amount(42).MultInt(0)
	require.NoError(t, err)
	require.Equal(t, Amount(0), zero)
}

func TestAmount_AddSub(t *testing.T) {
	require.Equal(t, Amount(300), Amount(100).MustAdd(200))
	require.Equal(t, Amount(100), Amount(300).MustSub(200))

	_, err := Amount(100).Sub(101)
	require.Equal(t, errors.AccountBalanceUnderZero, err)

	_, err = MaximumBalance.Add(1)
	require.Equal(t, errors.MaximumBalanceReached, err)
}

func TestAmountFromString(t *testing.T) {
	amount, err := AmountFromString(maximumBalanceStr)
	require.NoError(t, err)
	require.Equal(t, maximumBalanceStr, amount.String())

	_, err = AmountFromString(strconv.FormatUint(maximumBalance+1, 10))
	require.Equal(t, errors.MaximumBalanceReached, err)

	_, err = AmountFromString("-1")
	require.Error(t, err)
}

func TestAmountFromDecimalString(t *testing.T) {
	cases := []struct {
		input    string
		expected Amount
	}{
		{"69", Amount(690000000)},
		{"6.9", Amount(69000000)},
		{"0.0000001", Amount(1)},
		{"100", 100 * AmountPerCoin},
		{"0", Amount(0)},
	}

	for _, c := range cases {
		amount, err := AmountFromDecimalString(c.input)
		require.NoError(t, err, c.input)
		require.Equal(t, c.expected, amount, c.input)
	}

	for _, input := range []string{"-1", "0.00000001", "abc", ""} {
		_, err := AmountFromDecimalString(input)
		require.Error(t, err, input)
	}
}

func TestAmountDecimalString(t *testing.T) {
	require.Equal(t, "6.9", MustAmountFromDecimalString("6.9").DecimalString())
	require.Equal(t, "75.9", MustAmountFromDecimalString("69").MustAdd(MustAmountFromDecimalString("6.9")).DecimalString())
	require.Equal(t, "31", MustAmountFromDecimalString("100").MustSub(MustAmountFromDecimalString("69")).DecimalString())
}

func TestAmountJSON(t *testing.T) {
	var v struct {
		Price Amount `json:"price"`
	}
	v.Price = MustAmountFromDecimalString("6.9")

	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"price":"69000000"}`, string(b))

	v.Price = 0
	require.NoError(t, json.Unmarshal(b, &v))
	require.Equal(t, Amount(69000000), v.Price)
}
