package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeProviderSetTimezone(t *testing.T) {
	tp := &TimeProvider{}

	require.NoError(t, tp.SetTimezone("UTC"))
	assert.Equal(t, time.UTC, tp.Location())

	require.NoError(t, tp.SetTimezone("Local"))
	assert.Equal(t, time.Local, tp.Location())

	require.NoError(t, tp.SetTimezone(""))
	assert.Equal(t, time.Local, tp.Location())

	err := tp.SetTimezone("Not/AZone")
	assert.Error(t, err)
}

func TestTimeProviderFormat(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("Asia/Shanghai"))

	utc := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15 22:00", tp.Format(utc, "2006-01-02 15:04"))
}

func TestInitializeTimeProvider(t *testing.T) {
	require.NoError(t, InitializeTimeProvider("UTC"))
	assert.Equal(t, time.UTC, GetTimeProvider().Location())

	assert.Error(t, InitializeTimeProvider("Bad/Zone"))
	// Failed init keeps the previous provider.
	assert.Equal(t, time.UTC, GetTimeProvider().Location())
}
