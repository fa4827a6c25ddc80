package encoder

import (
	"math/rand/v2"
	"strings"
	"sync"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
const base = uint64(len(alphabet))

// HashLength is the fixed width of every generated hash
const HashLength = 8

// hashSpace is base^HashLength, the number of distinct hashes
const hashSpace = base * base * base * base * base * base * base * base

// Encode converts a number to a lowercase base36 string
func Encode(num uint64) string {
	if num == 0 {
		return string(alphabet[0])
	}

	var buf [13]byte
	i := len(buf)
	for num > 0 {
		i--
		buf[i] = alphabet[num%base]
		num /= base
	}

	return string(buf[i:])
}

// Source is the random source a Hasher draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Uint64N(n uint64) uint64
}

type globalSource struct{}

func (globalSource) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

// Hasher produces short random tokens of HashLength lowercase
// alphanumeric characters. Tokens are not checked for uniqueness.
type Hasher struct {
	mu  sync.Mutex
	src Source
}

// NewHasher creates a Hasher. A nil source uses the process-wide
// pseudo-random generator.
func NewHasher(src Source) *Hasher {
	if src == nil {
		src = globalSource{}
	}
	return &Hasher{src: src}
}

// Hash returns a fresh token, left-padded with zeros to HashLength
func (h *Hasher) Hash() string {
	h.mu.Lock()
	n := h.src.Uint64N(hashSpace)
	h.mu.Unlock()

	encoded := Encode(n)
	if pad := HashLength - len(encoded); pad > 0 {
		encoded = strings.Repeat(string(alphabet[0]), pad) + encoded
	}
	return encoded
}
