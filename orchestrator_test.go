package sentiview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sentiview"
	"github.com/fwojciec/sentiview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticAnalyzer(out sentiview.Outcome) *mock.Analyzer {
	return &mock.Analyzer{
		SubmitFn: func(_ context.Context, _ sentiview.Request) sentiview.Outcome {
			return out
		},
	}
}

func unreachableAnalyzer(t *testing.T) *mock.Analyzer {
	t.Helper()
	return &mock.Analyzer{
		SubmitFn: func(_ context.Context, _ sentiview.Request) sentiview.Outcome {
			t.Fatal("service must not be contacted")
			return sentiview.Outcome{}
		},
	}
}

func TestOrchestrator_Defaults(t *testing.T) {
	t.Parallel()

	o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
	s := o.State()

	assert.Equal(t, sentiview.ModeText, s.Mode)
	assert.Equal(t, sentiview.PhaseIdle, s.Phase)
	assert.Equal(t, sentiview.CollectorText, o.ActiveCollector())
	assert.True(t, s.View.Empty())
	assert.Equal(t, sentiview.StatusNone, s.Status.Kind)
}

func TestOrchestrator_SetMode(t *testing.T) {
	t.Parallel()

	t.Run("switches collector", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		o.SetMode(sentiview.ModeFile)

		assert.Equal(t, sentiview.ModeFile, o.Mode())
		assert.Equal(t, sentiview.CollectorFile, o.ActiveCollector())
	})

	t.Run("clears status and results even when mode is unchanged", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(staticAnalyzer(sentiview.Success([]sentiview.PredictionRecord{
			{Text: "x", Label: "LABEL_1", Score: 0.9},
		}, nil)))
		_, err := o.Analyze(context.Background(), sentiview.Form{Text: "x"})
		require.NoError(t, err)
		require.Len(t, o.State().View.Units, 1)

		o.SetMode(sentiview.ModeText)

		s := o.State()
		assert.Equal(t, sentiview.ModeText, s.Mode)
		assert.True(t, s.View.Empty())
		assert.Equal(t, sentiview.Status{}, s.Status)
	})

	t.Run("invalid mode panics", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))

		assert.Panics(t, func() { o.SetMode(sentiview.Mode(-1)) })
	})
}

func TestOrchestrator_Analyze_Text(t *testing.T) {
	t.Parallel()

	t.Run("submits normalized lines and renders results", func(t *testing.T) {
		t.Parallel()

		var got sentiview.Request
		analyzer := &mock.Analyzer{
			SubmitFn: func(_ context.Context, req sentiview.Request) sentiview.Outcome {
				got = req
				return sentiview.Success([]sentiview.PredictionRecord{
					{Text: "hello", Label: "LABEL_1", Score: 0.97},
					{Text: "world", Label: "LABEL_0", Score: 0.8},
				}, nil)
			},
		}
		o := sentiview.NewOrchestrator(analyzer)

		out, err := o.Analyze(context.Background(), sentiview.Form{Text: "  hello \n\n  world  \n"})

		require.NoError(t, err)
		assert.False(t, out.Failed())
		assert.Equal(t, sentiview.TextRequest{Texts: []string{"hello", "world"}}, got)

		s := o.State()
		assert.Equal(t, sentiview.PhaseIdle, s.Phase)
		require.Len(t, s.View.Units, 2)
		assert.Equal(t, sentiview.SentimentPositive, s.View.Units[0].Sentiment)
		assert.Equal(t, "97.0%", s.View.Units[0].Confidence)
		assert.Equal(t, sentiview.SentimentNegative, s.View.Units[1].Sentiment)
		assert.Equal(t, sentiview.Status{Kind: sentiview.StatusSuccess, Text: "Analysis completed: 2 results"}, s.Status)
	})

	t.Run("validation failure never contacts the service", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))

		_, err := o.Analyze(context.Background(), sentiview.Form{Text: "  \n \n"})

		var verr *sentiview.ValidationError
		require.True(t, errors.As(err, &verr))
		s := o.State()
		assert.Equal(t, sentiview.PhaseIdle, s.Phase)
		assert.Equal(t, sentiview.Status{Kind: sentiview.StatusWarning, Text: "Please enter some text!"}, s.Status)
		assert.True(t, s.View.Empty())
	})

	t.Run("service failure shows error and no results", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(staticAnalyzer(sentiview.Failure("HTTP 500")))

		out, err := o.Analyze(context.Background(), sentiview.Form{Text: "x"})

		require.NoError(t, err)
		assert.True(t, out.Failed())
		s := o.State()
		assert.Equal(t, sentiview.PhaseIdle, s.Phase)
		assert.Equal(t, sentiview.StatusError, s.Status.Kind)
		assert.Contains(t, s.Status.Text, "HTTP 500")
		assert.Empty(t, s.View.Units)
	})

	t.Run("failure hides previous results", func(t *testing.T) {
		t.Parallel()

		outcomes := []sentiview.Outcome{
			sentiview.Success([]sentiview.PredictionRecord{{Text: "a", Label: "LABEL_1", Score: 1}}, nil),
			sentiview.Failure("boom"),
		}
		analyzer := &mock.Analyzer{
			SubmitFn: func(_ context.Context, _ sentiview.Request) sentiview.Outcome {
				out := outcomes[0]
				outcomes = outcomes[1:]
				return out
			},
		}
		o := sentiview.NewOrchestrator(analyzer)

		_, err := o.Analyze(context.Background(), sentiview.Form{Text: "a"})
		require.NoError(t, err)
		_, err = o.Analyze(context.Background(), sentiview.Form{Text: "a"})
		require.NoError(t, err)

		assert.True(t, o.State().View.Empty())
	})

	t.Run("single result status", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(staticAnalyzer(sentiview.Success([]sentiview.PredictionRecord{
			{Text: "x", Label: "LABEL_1", Score: 0.9},
		}, nil)))

		_, err := o.Analyze(context.Background(), sentiview.Form{Text: "x"})

		require.NoError(t, err)
		assert.Equal(t, "Analysis completed: 1 result", o.State().Status.Text)
	})
}

func TestOrchestrator_Analyze_File(t *testing.T) {
	t.Parallel()

	t.Run("reports processed rows", func(t *testing.T) {
		t.Parallel()

		rows := 3
		var got sentiview.Request
		analyzer := &mock.Analyzer{
			SubmitFn: func(_ context.Context, req sentiview.Request) sentiview.Outcome {
				got = req
				return sentiview.Success([]sentiview.PredictionRecord{
					{Text: "a", Label: "LABEL_1", Score: 0.9},
				}, &rows)
			},
		}
		o := sentiview.NewOrchestrator(analyzer, sentiview.WithInitialMode(sentiview.ModeFile))

		_, err := o.Analyze(context.Background(), sentiview.Form{
			File:   &sentiview.Blob{Name: "r.csv", Data: []byte("Text\na\n")},
			Column: "Text",
		})

		require.NoError(t, err)
		assert.Equal(t, sentiview.ModeFile, got.Mode())
		s := o.State()
		require.NotNil(t, s.View.RowCount)
		assert.Equal(t, 3, *s.View.RowCount)
		assert.Equal(t, "Analysis completed: processed 3 rows", s.Status.Text)
	})

	t.Run("zero rows reads as an empty result", func(t *testing.T) {
		t.Parallel()

		rows := 0
		o := sentiview.NewOrchestrator(staticAnalyzer(sentiview.Success(nil, &rows)),
			sentiview.WithInitialMode(sentiview.ModeFile))

		_, err := o.Analyze(context.Background(), sentiview.Form{
			File:   &sentiview.Blob{Name: "r.csv", Data: []byte("Text\n")},
			Column: "Text",
		})

		require.NoError(t, err)
		s := o.State()
		assert.True(t, s.View.Empty())
		assert.Equal(t, "Analysis completed: 0 results", s.Status.Text)
	})

	t.Run("missing column is a warning", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t), sentiview.WithInitialMode(sentiview.ModeFile))

		_, err := o.Analyze(context.Background(), sentiview.Form{File: &sentiview.Blob{Name: "r.csv"}})

		require.Error(t, err)
		assert.Equal(t, sentiview.Status{Kind: sentiview.StatusWarning, Text: "Please enter text column name!"}, o.State().Status)
	})
}

func TestOrchestrator_Begin(t *testing.T) {
	t.Parallel()

	t.Run("enters submitting with pending status", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))

		ticket, err := o.Begin(sentiview.Form{Text: "x"})

		require.NoError(t, err)
		assert.Equal(t, sentiview.TextRequest{Texts: []string{"x"}}, ticket.Request)
		s := o.State()
		assert.True(t, s.Busy())
		assert.Equal(t, sentiview.Status{Kind: sentiview.StatusInfo, Text: "Analyzing..."}, s.Status)
	})

	t.Run("file mode pending status", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t), sentiview.WithInitialMode(sentiview.ModeFile))

		_, err := o.Begin(sentiview.Form{File: &sentiview.Blob{Name: "a.csv"}, Column: "Text"})

		require.NoError(t, err)
		assert.Equal(t, "Processing file...", o.State().Status.Text)
	})

	t.Run("second trigger while busy is ignored", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		_, err := o.Begin(sentiview.Form{Text: "x"})
		require.NoError(t, err)
		before := o.State()

		_, err = o.Begin(sentiview.Form{Text: "y"})

		assert.ErrorIs(t, err, sentiview.ErrBusy)
		assert.Equal(t, before, o.State())
	})
}

func TestOrchestrator_Complete(t *testing.T) {
	t.Parallel()

	t.Run("outcome after mode switch is discarded", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		ticket, err := o.Begin(sentiview.Form{Text: "x"})
		require.NoError(t, err)

		o.SetMode(sentiview.ModeFile)
		applied := o.Complete(ticket, sentiview.Success([]sentiview.PredictionRecord{
			{Text: "x", Label: "LABEL_1", Score: 0.9},
		}, nil))

		assert.False(t, applied)
		s := o.State()
		assert.Equal(t, sentiview.PhaseIdle, s.Phase)
		assert.Equal(t, sentiview.ModeFile, s.Mode)
		assert.True(t, s.View.Empty())
		assert.Equal(t, sentiview.Status{}, s.Status)
	})

	t.Run("mode switch while submitting keeps the wait visible", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		ticket, err := o.Begin(sentiview.Form{Text: "x"})
		require.NoError(t, err)

		o.SetMode(sentiview.ModeFile)

		s := o.State()
		assert.True(t, s.Busy())
		assert.Equal(t, sentiview.StatusInfo, s.Status.Kind)
		assert.Equal(t, "Waiting for previous analysis to finish...", s.Status.Text)

		_, err = o.Begin(sentiview.Form{File: &sentiview.Blob{Name: "a.csv"}, Column: "Text"})
		require.ErrorIs(t, err, sentiview.ErrBusy)
		assert.Equal(t, "Waiting for previous analysis to finish...", o.State().Status.Text)

		o.Complete(ticket, sentiview.Success(nil, nil))
		assert.False(t, o.State().Busy())
		assert.Equal(t, sentiview.Status{}, o.State().Status)
	})

	t.Run("new cycle is accepted after a discarded one", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		stale, err := o.Begin(sentiview.Form{Text: "x"})
		require.NoError(t, err)
		o.SetMode(sentiview.ModeText)
		o.Complete(stale, sentiview.Failure("late"))

		fresh, err := o.Begin(sentiview.Form{Text: "y"})
		require.NoError(t, err)

		assert.True(t, o.Complete(fresh, sentiview.Success(nil, nil)))
		assert.Equal(t, sentiview.StatusSuccess, o.State().Status.Kind)
	})

	t.Run("duplicate completion is ignored", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		ticket, err := o.Begin(sentiview.Form{Text: "x"})
		require.NoError(t, err)

		require.True(t, o.Complete(ticket, sentiview.Success(nil, nil)))

		assert.False(t, o.Complete(ticket, sentiview.Failure("again")))
		assert.Equal(t, sentiview.StatusSuccess, o.State().Status.Kind)
	})
}

func TestOrchestrator_Fail(t *testing.T) {
	t.Parallel()

	t.Run("publishes error status", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		o.Fail("open data.csv: no such file")

		s := o.State()
		assert.Equal(t, sentiview.PhaseIdle, s.Phase)
		assert.Equal(t, sentiview.Status{Kind: sentiview.StatusError, Text: "Error: open data.csv: no such file"}, s.Status)
	})

	t.Run("ignored while submitting", func(t *testing.T) {
		t.Parallel()

		o := sentiview.NewOrchestrator(unreachableAnalyzer(t))
		_, err := o.Begin(sentiview.Form{Text: "x"})
		require.NoError(t, err)

		o.Fail("ignored")

		assert.Equal(t, "Analyzing...", o.State().Status.Text)
	})
}

func TestOrchestrator_Clear(t *testing.T) {
	t.Parallel()

	o := sentiview.NewOrchestrator(staticAnalyzer(sentiview.Success([]sentiview.PredictionRecord{
		{Text: "x", Label: "LABEL_1", Score: 0.9},
	}, nil)))
	_, err := o.Analyze(context.Background(), sentiview.Form{Text: "x"})
	require.NoError(t, err)

	o.Clear()

	s := o.State()
	assert.True(t, s.View.Empty())
	assert.Equal(t, sentiview.Status{}, s.Status)
	assert.Equal(t, sentiview.ModeText, s.Mode)
}

func TestOrchestrator_WithLabelScheme(t *testing.T) {
	t.Parallel()

	o := sentiview.NewOrchestrator(
		staticAnalyzer(sentiview.Success([]sentiview.PredictionRecord{{Text: "x", Label: "POS", Score: 0.9}}, nil)),
		sentiview.WithLabelScheme(sentiview.LabelScheme{Positive: []string{"POS"}}),
		sentiview.WithRenderOptions(sentiview.RenderOptions{MaxTextLen: 0}),
	)

	_, err := o.Analyze(context.Background(), sentiview.Form{Text: "x"})

	require.NoError(t, err)
	assert.Equal(t, sentiview.SentimentPositive, o.State().View.Units[0].Sentiment)
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", sentiview.PhaseIdle.String())
	assert.Equal(t, "submitting", sentiview.PhaseSubmitting.String())
	assert.Equal(t, "Phase(99)", sentiview.Phase(99).String())
}
