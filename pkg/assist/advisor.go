package assist

import (
	"math/rand"
	"strings"

	"marketplace-client/internal/constant"
)

// AdviceCategory maps a topic term to one of the fixed advice categories.
// Keyword priority is first-match-wins.
func AdviceCategory(term string) string {
	t := strings.ToLower(term)

	switch {
	case strings.Contains(t, "ac") || strings.Contains(t, "cool"):
		return "ac"
	case strings.Contains(t, "plumb") || strings.Contains(t, "pipe") || strings.Contains(t, "leak"):
		return "plumbing"
	case strings.Contains(t, "electr") || strings.Contains(t, "light") || strings.Contains(t, "power"):
		return "electrical"
	case strings.Contains(t, "clean") || strings.Contains(t, "wash") || strings.Contains(t, "dust"):
		return "cleaning"
	case strings.Contains(t, "paint") || strings.Contains(t, "color"):
		return "painting"
	default:
		return "default"
	}
}

// Advisor picks presentation-flavor tips. The randomness source is
// injected so tests can pin the choice; ranking never depends on it.
type Advisor struct {
	rng *rand.Rand
}

func NewAdvisor(rng *rand.Rand) *Advisor {
	return &Advisor{rng: rng}
}

// Advice returns one tip for the topic term, chosen uniformly from the
// category's list.
func (a *Advisor) Advice(term string) string {
	list := constant.AdviceKB[AdviceCategory(term)]
	return list[a.rng.Intn(len(list))]
}
