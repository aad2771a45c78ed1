package sentiview_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/sentiview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest_Text(t *testing.T) {
	t.Parallel()

	t.Run("builds request from normalized lines", func(t *testing.T) {
		t.Parallel()

		req, err := sentiview.BuildRequest(sentiview.ModeText, sentiview.Form{Text: "great movie\n\n terrible plot "})

		require.NoError(t, err)
		assert.Equal(t, sentiview.TextRequest{Texts: []string{"great movie", "terrible plot"}}, req)
		assert.Equal(t, sentiview.ModeText, req.Mode())
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := sentiview.BuildRequest(sentiview.ModeText, sentiview.Form{Text: "   \n\n"})

		var verr *sentiview.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, sentiview.ErrEmptyInput, verr.Reason)
		assert.Equal(t, "Please enter some text!", verr.Message())
	})

	t.Run("file fields are ignored in text mode", func(t *testing.T) {
		t.Parallel()

		req, err := sentiview.BuildRequest(sentiview.ModeText, sentiview.Form{
			Text:   "ok",
			File:   &sentiview.Blob{Name: "a.csv"},
			Column: "Text",
		})

		require.NoError(t, err)
		assert.IsType(t, sentiview.TextRequest{}, req)
	})
}

func TestBuildRequest_File(t *testing.T) {
	t.Parallel()

	blob := &sentiview.Blob{Name: "reviews.csv", Data: []byte("Text\nnice\n")}

	t.Run("builds request with trimmed column", func(t *testing.T) {
		t.Parallel()

		req, err := sentiview.BuildRequest(sentiview.ModeFile, sentiview.Form{File: blob, Column: "  Text "})

		require.NoError(t, err)
		assert.Equal(t, sentiview.FileRequest{File: *blob, TextColumn: "Text"}, req)
		assert.Equal(t, sentiview.ModeFile, req.Mode())
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := sentiview.BuildRequest(sentiview.ModeFile, sentiview.Form{Column: "Text"})

		var verr *sentiview.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, sentiview.ErrMissingFile, verr.Reason)
		assert.Equal(t, "Please select a file!", verr.Message())
	})

	t.Run("blank column is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := sentiview.BuildRequest(sentiview.ModeFile, sentiview.Form{File: blob, Column: "   "})

		var verr *sentiview.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, sentiview.ErrMissingColumn, verr.Reason)
		assert.Equal(t, "Please enter text column name!", verr.Message())
	})

	t.Run("missing file is reported before missing column", func(t *testing.T) {
		t.Parallel()

		_, err := sentiview.BuildRequest(sentiview.ModeFile, sentiview.Form{})

		var verr *sentiview.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, sentiview.ErrMissingFile, verr.Reason)
	})
}

func TestBuildRequest_InvalidModePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_, _ = sentiview.BuildRequest(sentiview.Mode(7), sentiview.Form{Text: "x"})
	})
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &sentiview.ValidationError{Reason: sentiview.ErrMissingColumn}

	assert.Contains(t, err.Error(), "validation")
}
