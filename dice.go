package bgengine

import (
	"crypto/rand"
	"math/big"
)

// DiceSource provides die values. Intn returns a value in [0, n).
type DiceSource interface {
	Intn(n int) int
}

type cryptoSource struct{}

// RandomDice returns a source of cryptographically random die values.
func RandomDice() DiceSource {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	return RandInt(n)
}

// RandInt returns a uniformly distributed value in [0, max).
func RandInt(max int) int {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}
	return int(i.Int64())
}

// FixedDice replays the provided die values (1-6) in order. Once the values
// are exhausted it draws from Fallback, or wraps around when Fallback is nil.
type FixedDice struct {
	Values   []int
	Fallback DiceSource
	next     int
}

func (d *FixedDice) Intn(n int) int {
	if d.Fallback != nil && d.next >= len(d.Values) {
		return d.Fallback.Intn(n)
	} else if len(d.Values) == 0 {
		return 0
	}
	v := d.Values[d.next%len(d.Values)]
	d.next++
	return (v - 1) % n
}

// rollMoves returns the move multiset granted by a roll.
func rollMoves(roll1 int, roll2 int) []int {
	if roll1 == roll2 {
		return []int{roll1, roll1, roll1, roll1}
	}
	return []int{roll1, roll2}
}
