package demo

import (
	"hash/fnv"
	"strings"
	"unicode"
)

// Labels emitted by the stand-in, matching the service's default convention.
const (
	LabelPositive = "LABEL_1"
	LabelNegative = "LABEL_0"
)

// Scorer assigns a deterministic label and score to a text by counting
// lexicon hits. The same text always gets the same prediction.
type Scorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var defaultPositive = []string{
	"good", "great", "excellent", "love", "loved", "like", "amazing", "awesome",
	"fantastic", "happy", "best", "wonderful", "nice", "enjoyed", "perfect",
	"recommend", "beautiful", "brilliant", "fun", "pleasant",
}

var defaultNegative = []string{
	"bad", "terrible", "awful", "hate", "hated", "worst", "boring", "poor",
	"disappointing", "disappointed", "horrible", "sad", "angry", "broken",
	"waste", "ugly", "slow", "annoying", "dull", "not",
}

// NewScorer returns a Scorer with the built-in English lexicon.
func NewScorer() *Scorer {
	return NewScorerWithLexicon(defaultPositive, defaultNegative)
}

// NewScorerWithLexicon returns a Scorer with custom word lists.
func NewScorerWithLexicon(positive, negative []string) *Scorer {
	return &Scorer{
		positive: wordSet(positive),
		negative: wordSet(negative),
	}
}

// Score returns a label and a confidence in [0.5, 1).
func (s *Scorer) Score(text string) (string, float64) {
	var pos, neg int
	for _, w := range tokenize(text) {
		if _, ok := s.positive[w]; ok {
			pos++
		}
		if _, ok := s.negative[w]; ok {
			neg++
		}
	}

	if pos == neg {
		// No signal: pick a side from the text hash so output stays stable.
		h := hash(text)
		label := LabelNegative
		if h%2 == 0 {
			label = LabelPositive
		}
		return label, 0.5 + float64(h%100)/1000
	}

	label := LabelPositive
	if neg > pos {
		label = LabelNegative
	}
	diff := pos - neg
	if diff < 0 {
		diff = -diff
	}
	total := pos + neg
	score := 0.5 + 0.49*float64(diff)/float64(total)
	return label, score
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func wordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = struct{}{}
	}
	return m
}

func hash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
