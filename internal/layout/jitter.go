package layout

import (
	"encoding/binary"
	"hash/fnv"
	"time"
)

// Channel selects an independent jitter stream.
type Channel uint8

const (
	ChannelX Channel = iota
	ChannelY
	ChannelRotation
)

// Jitter yields a deterministic offset in [-1, 1] per card index and channel.
type Jitter interface {
	Offset(index int, ch Channel) float64
}

type noJitter struct{}

func (noJitter) Offset(int, Channel) float64 { return 0 }

// NoJitter places every card on its baseline grid position.
var NoJitter Jitter = noJitter{}

// SeededJitter hashes (seed, index, channel) so the same seed always yields the same board.
type SeededJitter struct {
	seed int64
}

// NewSeededJitter returns a jitter reproducible from seed.
func NewSeededJitter(seed int64) SeededJitter {
	return SeededJitter{seed: seed}
}

// Seed returns the seed the jitter was built from.
func (j SeededJitter) Seed() int64 {
	return j.seed
}

func (j SeededJitter) Offset(index int, ch Channel) float64 {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(j.seed))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(index))
	buf[16] = byte(ch)

	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	// 53 bits keep the float conversion exact.
	u := float64(h.Sum64()>>11) / float64(1<<53)
	return u*2 - 1
}

// RandomJitter seeds a new jitter from the clock; call once per layout pass.
func RandomJitter() SeededJitter {
	return NewSeededJitter(time.Now().UnixNano())
}
