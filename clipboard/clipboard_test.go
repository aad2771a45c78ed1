package clipboard_test

import (
	"testing"

	atotto "github.com/atotto/clipboard"
	"github.com/fwojciec/sentiview/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Copy(t *testing.T) {
	t.Parallel()

	cb := clipboard.NewSystem()
	if !cb.Available() {
		t.Skip("no clipboard utility available, skipping clipboard test")
	}

	testContent := "test clipboard content from sentiview"

	if err := cb.Copy(testContent); err != nil {
		// A utility may be installed without a display to talk to.
		t.Skipf("clipboard not usable: %v", err)
	}

	got, err := atotto.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, testContent, got)
}

func TestSystem_Unsupported(t *testing.T) {
	t.Parallel()

	cb := clipboard.NewSystem()
	if cb.Available() {
		t.Skip("clipboard available, nothing to check")
	}

	assert.ErrorIs(t, cb.Copy("x"), clipboard.ErrUnsupported)
}
