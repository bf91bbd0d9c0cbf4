// Package tips picks rotating study tips.
package tips

import (
	"math/rand"
	"time"
)

var catalog = []string{
	"💡 The Pomodoro technique works because your brain needs breaks to consolidate information",
	"⚡ Studying at the same time every day builds an automatic habit. Your brain gets ready on its own",
	"🎯 Always start with the hardest task. Your willpower is highest in the morning",
	"🧠 Summarizing out loud activates more areas of the brain than just reading",
	"⏰ Five-minute breaks are ideal. Shorter and you don't rest, longer and you lose momentum",
	"📱 Put your phone in airplane mode during sessions. A notification breaks your focus for 25 minutes",
	"☕ Caffeine takes 20 minutes to kick in. Have it before studying, not during",
	"🎵 Music without lyrics (lofi, classical) improves focus. Music with lyrics distracts",
}

// All returns every tip.
func All() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// Generator picks tips uniformly at random.
type Generator struct {
	rnd  *rand.Rand
	last int
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), last: -1}
}

// Next returns a random tip, never the same one twice in a row.
func (g *Generator) Next() string {
	idx := g.rnd.Intn(len(catalog))
	if idx == g.last {
		idx = (idx + 1 + g.rnd.Intn(len(catalog)-1)) % len(catalog)
	}
	g.last = idx
	return catalog[idx]
}
