package jsonl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/sentiview"
	"github.com/fwojciec/sentiview/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaver_Save(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "runs.jsonl")

		err := jsonl.NewSaver().Save(path, sentiview.Run{ID: "r1", Mode: sentiview.ModeText})

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"id":"r1"`)
		assert.Contains(t, string(content), `"mode":"text"`)
	})

	t.Run("appends to existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "runs.jsonl")
		saver := jsonl.NewSaver()

		require.NoError(t, saver.Save(path, sentiview.Run{ID: "r1"}))
		require.NoError(t, saver.Save(path, sentiview.Run{ID: "r2"}))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		assert.Len(t, lines, 2)
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("round trips saved runs", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "runs.jsonl")
		rows := 10
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		want := sentiview.Run{
			ID:       "r1",
			Mode:     sentiview.ModeFile,
			Source:   "reviews.csv",
			Records:  []sentiview.PredictionRecord{{Text: "good", Label: "LABEL_1", Score: 0.88}},
			RowCount: &rows,
			At:       at,
		}
		require.NoError(t, jsonl.NewSaver().Save(path, want))

		runs, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, want, runs[0])
	})

	t.Run("missing file yields no runs", func(t *testing.T) {
		t.Parallel()

		runs, err := jsonl.NewLoader().Load(filepath.Join(t.TempDir(), "absent.jsonl"))

		require.NoError(t, err)
		assert.Empty(t, runs)
	})

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "runs.jsonl")
		content := `{"id":"a","mode":"text"}` + "\n\n" + `{"id":"b","mode":"file"}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		runs, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, sentiview.ModeFile, runs[1].Mode)
	})

	t.Run("reports line number of malformed record", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "runs.jsonl")
		content := `{"id":"a","mode":"text"}` + "\n" + `{not json` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := jsonl.NewLoader().Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestWriter_WriteView(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	view := sentiview.Render([]sentiview.PredictionRecord{
		{Text: "love <this>", Label: "LABEL_1", Score: 0.97},
		{Text: "hate", Label: "LABEL_0", Score: 0.9},
	}, nil, sentiview.DefaultLabelScheme(), sentiview.DefaultRenderOptions())

	err := jsonl.NewWriter(&buf).WriteView(view)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"index":0,"sentiment":"positive","label":"LABEL_1","confidence":"97.0%","text":"love <this>","truncated":false}`, lines[0])
	assert.Contains(t, lines[1], `"sentiment":"negative"`)
}
