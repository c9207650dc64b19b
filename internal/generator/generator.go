// Package generator samples practice words from a word list.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces randomized word sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects words uniformly.
func (g *Generator) Generate(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// GenerateWeighted selects words with a bias toward weak characters.
func (g *Generator) GenerateWeighted(words []string, count int, weakSet map[rune]struct{}, factor float64) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	weights, total := weighWords(words, weakSet, factor)
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.pick(weights, total)])
	}
	return result
}

// GenerateDistinct is GenerateWeighted without repeats. It returns fewer
// than count words when the list is too short.
func (g *Generator) GenerateDistinct(words []string, count int, weakSet map[rune]struct{}, factor float64) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	weights, total := weighWords(words, weakSet, factor)
	result := make([]string, 0, count)
	seen := map[string]struct{}{}
	for remaining := len(words); len(result) < count && remaining > 0; remaining-- {
		idx := g.pick(weights, total)
		total -= weights[idx]
		weights[idx] = 0
		if _, dup := seen[words[idx]]; dup {
			continue
		}
		seen[words[idx]] = struct{}{}
		result = append(result, words[idx])
	}
	return result
}

func weighWords(words []string, weakSet map[rune]struct{}, factor float64) ([]float64, float64) {
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}
	return weights, total
}

func (g *Generator) pick(weights []float64, total float64) int {
	r := g.rnd.Float64() * total
	acc := 0.0
	last := 0
	for j, w := range weights {
		if w <= 0 {
			continue
		}
		last = j
		acc += w
		if r <= acc {
			return j
		}
	}
	return last
}
