package demo_test

import (
	"testing"

	"github.com/fwojciec/sentiview/demo"
	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	t.Parallel()

	s := demo.NewScorer()

	t.Run("positive words win", func(t *testing.T) {
		t.Parallel()

		label, score := s.Score("Great acting, I loved it!")

		assert.Equal(t, demo.LabelPositive, label)
		assert.InDelta(t, 0.99, score, 0.001)
	})

	t.Run("negative words win", func(t *testing.T) {
		t.Parallel()

		label, _ := s.Score("The worst, most boring film")

		assert.Equal(t, demo.LabelNegative, label)
	})

	t.Run("mixed signal lowers confidence", func(t *testing.T) {
		t.Parallel()

		_, mixed := s.Score("good but slow and bad")
		_, clear := s.Score("bad")

		assert.Less(t, mixed, clear)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		l1, s1 := s.Score("the package arrived on tuesday")
		l2, s2 := s.Score("the package arrived on tuesday")

		assert.Equal(t, l1, l2)
		assert.Equal(t, s1, s2)
	})

	t.Run("score stays in range", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{"", "x", "good", "bad bad bad", "good bad", "meh okay"} {
			_, score := s.Score(text)
			assert.GreaterOrEqual(t, score, 0.5, text)
			assert.Less(t, score, 1.0, text)
		}
	})
}

func TestScorer_CustomLexicon(t *testing.T) {
	t.Parallel()

	s := demo.NewScorerWithLexicon([]string{"Bueno"}, []string{"malo"})

	label, _ := s.Score("muy bueno")

	assert.Equal(t, demo.LabelPositive, label)
}
