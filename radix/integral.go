package radix

import (
	"math/big"

	"github.com/shogo82148/int128"

	"github.com/lattice-substrate/ecmakit/floatbits"
)

// integral is the exact integer part of a magnitude. Values below 2^128 live
// in small; wide is used above that.
type integral struct {
	small int128.Uint128
	wide  *big.Int
}

var one128 = int128.Uint128{L: 1}

// split returns the exact integer and fractional parts of a non-negative
// finite magnitude.
func split(mag float64) (integral, float64) {
	if mag < 1 {
		return integral{}, mag
	}
	_, exp, mant := floatbits.Decompose(mag)
	switch {
	case exp < 52:
		ip := mant >> uint(52-exp)
		return integral{small: int128.Uint128{L: ip}}, mag - float64(ip)
	case exp < 128:
		return integral{small: shiftLeft(mant, uint(exp-52))}, 0
	default:
		w := new(big.Int).SetUint64(mant)
		return integral{wide: w.Lsh(w, uint(exp-52))}, 0
	}
}

func shiftLeft(v uint64, s uint) int128.Uint128 {
	if s >= 64 {
		return int128.Uint128{H: v << (s - 64)}
	}
	return int128.Uint128{H: v >> (64 - s), L: v << s}
}

// increment adds one, absorbing a carry out of the fractional digits.
func (n *integral) increment() {
	if n.wide != nil {
		n.wide.Add(n.wide, big.NewInt(1))
		return
	}
	n.small = n.small.Add(one128)
}

// pushDigits writes the base-r digits of n into a, least significant first.
// Zero produces a single '0'. n is consumed.
func (n *integral) pushDigits(a *assembly, r Radix) {
	if n.wide != nil {
		n.pushWide(a, r)
		return
	}
	for n.small.H != 0 {
		q, m := n.small.DivMod(int128.Uint128{L: uint64(r)})
		a.push(Digit(byte(m.L)))
		n.small = q
	}
	v, base := n.small.L, uint64(r)
	for {
		a.push(Digit(byte(v % base)))
		v /= base
		if v == 0 {
			return
		}
	}
}

func (n *integral) pushWide(a *assembly, r Radix) {
	base := big.NewInt(int64(r))
	m := new(big.Int)
	for n.wide.Sign() > 0 {
		n.wide.QuoRem(n.wide, base, m)
		a.push(Digit(byte(m.Uint64())))
	}
}
