// Define the `Amount` type, which is the monetary type used accross the code base
//
// One coin accounts for 10 million currency units, so prices such as 6.9 are
// represented exactly and change is computed without rounding.
// In addition to the `Amount` type, some member functions are defined:
//   - `Add` / `Sub` do an addition / substraction and return an error object
//   - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a `panic`.
//     Those are provided for testing / quick prototyping and should not be in production code.
//   - Invariant `panic`s if the instance it's called on violates its invariant (see Contract programming)
package common

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"boscoin.io/herehere/lib/errors"
)

const (
	// 10,000,000 units == 1 coin
	AmountPerCoin Amount = 10000000
	// Number of fractional digits of a coin
	AmountDecimals int32 = 7
	// The maximum possible supply of coins within any network
	// It is 100 billion coins, or 1,000,000,000,000,000,000 in `Amount`, which
	// keeps every valid amount inside the int64 range used by `Decimal`
	MaximumBalance Amount = 100000000000 * AmountPerCoin
	// An invalid valid, used to make an instance unusable
	invalidValue = Amount(MaximumBalance + 1)
)

// Main monetary type
type Amount uint64

// Check this type's invariant, that is, its value is <= MaximumBalance
func (a Amount) Invariant() {
	if a > MaximumBalance {
		// `uint64` is necessary to avoid a recursive call to `String`
		// which would lead to an infinite recursion
		panic(fmt.Errorf("Amount '%d' is higher than the total supply of coins (%d)", uint64(a), uint64(MaximumBalance)))
	}
}

// Stringer interface implementation
func (a Amount) String() string {
	a.Invariant()
	return strconv.FormatUint(uint64(a), 10)
}

// Decimal returns the amount in coins, ie. `69000000` is `6.9`.
func (a Amount) Decimal() decimal.Decimal {
	a.Invariant()
	return decimal.New(int64(a), -AmountDecimals)
}

// DecimalString is the human form of `Decimal`
func (a Amount) DecimalString() string {
	return a.Decimal().String()
}

// Add an `Amount` to this `Amount`
//
// If the resulting value would overflow maximumAmount, an error is returned,
// along with the value (which would trigger a `panic` if used).
func (a Amount) Add(added Amount) (n Amount, err error) {
	a.Invariant()
	added.Invariant()
	if n = a + added; n > MaximumBalance {
		err = errors.MaximumBalanceReached
	}
	return
}

// Counterpart of `Add` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustAdd(added Amount) Amount {
	if v, err := a.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

// Substract an `Amount` to this `Amount`
//
// If the resulting value would underflow, an error is returned,
// along with an invalid value (which would trigger a `panic` if used).
func (a Amount) Sub(sub Amount) (Amount, error) {
	a.Invariant()
	sub.Invariant()
	if a < sub {
		return invalidValue, errors.AccountBalanceUnderZero
	}
	return a - sub, nil
}

// Counterpart of `Sub` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustSub(sub Amount) Amount {
	if v, err := a.Sub(sub); err != nil {
		panic(err)
	} else {
		return v
	}
}

// Add this `Amount` to itself, `n` times
//
// If the resulting value would overflow maximumAmount, an error is returned,
// along with the value (which would trigger a `panic` if used).
func (a Amount) MultInt(n int) (Amount, error) {
	if n < 0 {
		return invalidValue, errors.AccountBalanceUnderZero
	}
	if n == 0 {
		return Amount(0), nil
	}

	a.Invariant()
	if uint64(MaximumBalance)/uint64(n) < uint64(a) {
		return invalidValue, errors.MaximumBalanceReached
	}

	return Amount(uint64(a) * uint64(n)), nil
}

// Counterpart of `MultInt` which panic instead of returning an error
func (a Amount) MustMult(n int) Amount {
	if v, err := a.MultInt(n); err != nil {
		panic(err)
	} else {
		return v
	}
}

// Implement JSON's Marshaler interface
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

// Implement JSON's Unmarshaler interface
// If Unmarshalling errors, `a` will have an `invalidValue`
func (a *Amount) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 {
		*a = invalidValue
		return errors.InvalidAmount
	}
	*a, err = AmountFromString(string(b[1 : len(b)-1]))
	return
}

// Parse an `Amount` from a string input
//
// Params:
//
//	str = a string consisting only of numbers, expressing an amount in units
//
// Returns:
//
//	A valid `Amount` and a `nil` error, or an invalid amount and an `error`
func AmountFromString(str string) (Amount, error) {
	value, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return invalidValue, err
	}
	if Amount(value) > MaximumBalance {
		return invalidValue, errors.MaximumBalanceReached
	}
	return Amount(value), nil
}

// Parse an `Amount` from a decimal number of coins
//
// Params:
//
//	str = a decimal number, eg. "6.9" or "100"
//
// Returns:
//
//	A valid `Amount` and a `nil` error. Negative numbers and numbers with more
//	fractional digits than a unit can hold are rejected with `InvalidAmount`.
func AmountFromDecimalString(str string) (Amount, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return invalidValue, errors.InvalidAmount.Clone().SetData("error", err.Error())
	}

	return AmountFromDecimal(d)
}

func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.Sign() < 0 {
		return invalidValue, errors.InvalidAmount.Clone().SetData("amount", d.String())
	}

	units := d.Shift(AmountDecimals)
	if !units.Equal(units.Truncate(0)) {
		return invalidValue, errors.InvalidAmount.Clone().SetData("amount", d.String())
	}
	if units.GreaterThan(MaximumBalance.Decimal().Shift(AmountDecimals)) {
		return invalidValue, errors.MaximumBalanceReached
	}

	return Amount(units.IntPart()), nil
}

// Same as AmountFromDecimalString, except it `panic`s if an error happens
func MustAmountFromDecimalString(str string) Amount {
	if value, err := AmountFromDecimalString(str); err != nil {
		panic(err)
	} else {
		return value
	}
}
