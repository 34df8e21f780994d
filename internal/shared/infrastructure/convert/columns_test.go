package convert

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_NormalisesToUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2025, 1, 2, 3, 4, 5, 0, loc)

	s := FormatTime(local)
	assert.Equal(t, "2025-01-01T21:34:05Z", s)

	back, err := ParseTime(s)
	require.NoError(t, err)
	assert.True(t, back.Equal(local))
}

func TestFormatTime_OrdersLexically(t *testing.T) {
	early := FormatTime(time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC))
	late := FormatTime(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC))
	assert.Less(t, early, late)
}

func TestNullableTime(t *testing.T) {
	assert.False(t, NullableTime(nil).Valid)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ns := NullableTime(&now)
	require.True(t, ns.Valid)

	parsed, err := ParseNullableTime(ns)
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, parsed.Equal(now))

	none, err := ParseNullableTime(sql.NullString{})
	assert.NoError(t, err)
	assert.Nil(t, none)

	_, err = ParseNullableTime(sql.NullString{String: "yesterday", Valid: true})
	assert.Error(t, err)
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}
