package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tetris-pwa/internal/config"
)

// Randomizer yields the piece sequence.
type Randomizer interface {
	Next() Kind
}

// NewRandomizer returns the named randomizer drawing from rng.
// Unknown names fall back to the 7-bag.
func NewRandomizer(name string, rng *rand.Rand) Randomizer {
	if name == config.RandomizerUniform {
		return &uniformRandomizer{rng: rng}
	}
	return &bagRandomizer{rng: rng}
}

// bagRandomizer deals all seven kinds in shuffled order before repeating.
type bagRandomizer struct {
	rng *rand.Rand
	bag []Kind
}

func (b *bagRandomizer) Next() Kind {
	if len(b.bag) == 0 {
		b.bag = append(b.bag[:0], Kinds[:]...)
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	k := b.bag[0]
	b.bag = b.bag[1:]
	return k
}

// uniformRandomizer picks each kind independently.
type uniformRandomizer struct {
	rng *rand.Rand
}

func (u *uniformRandomizer) Next() Kind {
	return Kinds[u.rng.Intn(len(Kinds))]
}
