package printing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpConverter_Defaults(t *testing.T) {
	c := NewChromedpConverter(ChromedpConfig{})
	defer c.Close()

	assert.Equal(t, defaultChromeTimeout, c.config.DefaultTimeout)
	assert.Equal(t, defaultScale, c.config.Scale)
	assert.NotNil(t, c.logger)
}

func TestChromedpConverter_PrintParams(t *testing.T) {
	c := NewChromedpConverter(ChromedpConfig{Scale: 0.9, DefaultTimeout: time.Second})
	defer c.Close()

	params := c.printParams()
	assert.InDelta(t, mmToInches(210), params.PaperWidth, 0.01)
	assert.InDelta(t, mmToInches(297), params.PaperHeight, 0.01)
	assert.InDelta(t, mmToInches(10), params.MarginTop, 0.01)
	assert.Equal(t, 0.9, params.Scale)
	assert.True(t, params.PrintBackground)
}

func TestChromedpConverter_RejectsEmptyHTML(t *testing.T) {
	c := NewChromedpConverter(ChromedpConfig{})
	defer c.Close()

	_, err := c.HTMLToPDF(context.Background(), []byte("  \n"))
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestCompleteHTML(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, completeHTML(full))

	wrapped := completeHTML("<p>x</p>")
	assert.Contains(t, wrapped, "<!DOCTYPE html>")
	assert.Contains(t, wrapped, "<body><p>x</p></body>")
}

func TestAllocatorOptions_NoSandbox(t *testing.T) {
	base := len(allocatorOptions(ChromedpConfig{}))
	assert.Equal(t, base+1, len(allocatorOptions(ChromedpConfig{NoSandbox: true})))
}

func TestIsTimeout(t *testing.T) {
	timeout := NewRenderError(ErrCodeRenderTimeout, "PDF rendering timed out", context.DeadlineExceeded)
	assert.True(t, IsTimeout(timeout))
	assert.True(t, IsTimeout(fmt.Errorf("convert INV-7 to pdf: %w", timeout)))
	assert.True(t, errors.Is(timeout, context.DeadlineExceeded))

	assert.False(t, IsTimeout(NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", nil)))
	assert.False(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(nil))
}
