package court

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Default message generator delay range.
const (
	DefaultMessageMin = 20 * time.Second
	DefaultMessageMax = 30 * time.Second
)

// Generator draws simulated messages and the delay before the next one.
type Generator struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	sources []Source
	pool    []Message
	min     time.Duration
	max     time.Duration
}

// NewGenerator creates a generator over pool. A nil rnd uses a randomly seeded source.
func NewGenerator(pool []Message, min, max time.Duration, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if max < min {
		min, max = max, min
	}
	return &Generator{
		rnd:     rnd,
		sources: HumanSources,
		pool:    pool,
		min:     min,
		max:     max,
	}
}

// Next picks a uniformly random human source and message.
func (g *Generator) Next() (Source, Message) {
	g.mu.Lock()
	defer g.mu.Unlock()

	source := g.sources[g.rnd.IntN(len(g.sources))]
	msg := g.pool[g.rnd.IntN(len(g.pool))]
	return source, msg
}

// Delay returns a duration uniformly distributed in [min, max).
func (g *Generator) Delay() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	span := g.max - g.min
	if span <= 0 {
		return g.min
	}
	return g.min + time.Duration(g.rnd.Int64N(int64(span)))
}
