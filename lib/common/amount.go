//
// Define the `Amount` type, which is the monetary type used accross the code base
//
// One coin accounts for 10 million currency units.
// In addition to the `Amount` type, some member functions are defined:
// - `Add` / `Sub` do an addition / substraction and return an error object
// - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a `panic`.
//   Those are provided for testing / quick prototyping and should not be in production code.
// - Invariant `panic`s if the instance it's called on violates its invariant
//
package common

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"

	"boscoin.io/minidao/lib/errors"
)

const (
	// 10,000,000 units == 1 coin
	AmountPerCoin Amount = 10000000
	// Number of the fractional digits of a coin
	AmountDecimals = 7
	// The maximum possible supply of coins within any network
	MaximumBalance Amount = 1000000000000 * AmountPerCoin
	// An invalid valid, used to make an instance unusable
	invalidValue = Amount(MaximumBalance + 1)
)

// Main monetary type used accross minidao
type Amount uint64

// Check this type's invariant, that is, its value is <= MaximumBalance
func (a Amount) Invariant() {
	if a > MaximumBalance {
		// `uint64` is necessary to avoid a recursive call to `String`
		panic(fmt.Errorf("Amount '%d' is higher than the total supply of coins (%d)", uint64(a), uint64(MaximumBalance)))
	}
}

func (a Amount) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, a.String())
}

// Stringer interface implementation
func (a Amount) String() string {
	a.Invariant()
	return strconv.FormatUint(uint64(a), 10)
}

// CoinString formats the amount in coins, ie. `AmountPerCoin / 10` is "0.1".
func (a Amount) CoinString() string {
	a.Invariant()
	whole := uint64(a / AmountPerCoin)
	frac := uint64(a % AmountPerCoin)
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}

	f := strings.TrimRight(fmt.Sprintf("%07d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, f)
}

//
// Add an `Amount` to this `Amount`
//
// If the resulting value would overflow maximumAmount, an error is returned,
// along with the value (which would trigger a `panic` if used).
//
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

//
// Substract an `Amount` to this `Amount`
//
// If the resulting value would underflow, an error is returned,
// along with an invalid value (which would trigger a `panic` if used).
//
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

// Implement JSON's Marshaler interface
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

// Implement JSON's Unmarshaler interface
// If Unmarshalling errors, `a` will have an `invalidValue`
func (a *Amount) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 {
		*a = invalidValue
		return errors.InvalidOperation
	}
	*a, err = AmountFromString(string(b[1 : len(b)-1]))
	return
}

// Parse an `Amount` from a string input
//
// Params:
//   str = a string consisting only of numbers, expressing an amount in units
//
// Returns:
//  A valid `Amount` and a `nil` error, or an invalid amount and an `error`
func AmountFromString(str string) (Amount, error) {
	if value, err := strconv.ParseUint(str, 10, 64); err != nil {
		return invalidValue, err
	} else if Amount(value) > MaximumBalance {
		return invalidValue, errors.MaximumBalanceReached
	} else {
		return Amount(value), nil
	}
}

// AmountFromCoinString parses the amount in coins with up to 7 fractional
// digits, ie. "0.1" is `AmountPerCoin / 10`.
func AmountFromCoinString(str string) (Amount, error) {
	parts := strings.SplitN(str, ".", 2)
	whole, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return invalidValue, err
	}
	if whole > uint64(MaximumBalance/AmountPerCoin) {
		return invalidValue, errors.MaximumBalanceReached
	}

	var frac uint64
	if len(parts) == 2 {
		f := parts[1]
		if len(f) < 1 || len(f) > AmountDecimals {
			return invalidValue, fmt.Errorf("expects 1 to %d fractional digits: %q", AmountDecimals, str)
		}
		if frac, err = strconv.ParseUint(f+strings.Repeat("0", AmountDecimals-len(f)), 10, 64); err != nil {
			return invalidValue, err
		}
	}

	a := Amount(whole)*AmountPerCoin + Amount(frac)
	if a > MaximumBalance {
		return invalidValue, errors.MaximumBalanceReached
	}

	return a, nil
}
