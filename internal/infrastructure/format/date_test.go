package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFormatting(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)

	assert.Equal(t, "05-03-2024", FormatLocalDate(ts))
	assert.Equal(t, "05-03-2024 14:07", FormatLocalDateTime(ts))
	assert.Equal(t, "2024-03-05", FormatInputDate(ts))

	assert.Equal(t, "-", FormatLocalDate(time.Time{}))
	assert.Equal(t, "-", FormatLocalDateTime(time.Time{}))
	assert.Equal(t, "", FormatInputDate(time.Time{}))
	assert.Equal(t, "-", FormatLocalDatePtr(nil))
}

func TestParseInputDate(t *testing.T) {
	got, err := ParseInputDate("2024-12-31", nil)
	require.NoError(t, err)
	assert.Equal(t, time.December, got.Month())

	_, err = ParseInputDate("31-12-2024", nil)
	assert.Error(t, err)
}
