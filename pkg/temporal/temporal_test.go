package temporal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/temporal"
)

func TestDateRoundTrip(t *testing.T) {
	v, ok := temporal.ParseDate("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", v.String())
}

func TestLocalDateTimeRoundTrip(t *testing.T) {
	v, ok := temporal.ParseLocalDateTime("2024-03-15T10:30:00")
	require.True(t, ok)
	assert.Equal(t, "2024-03-15T10:30:00", v.String())
}

func TestDateTimeWithOffsetRoundTrip(t *testing.T) {
	v, ok := temporal.ParseDateTime("2024-03-15T10:30:00+02:00")
	require.True(t, ok)
	assert.Equal(t, "2024-03-15T10:30:00+02:00", v.String())
}

func TestDurationParseAndString(t *testing.T) {
	v, ok := temporal.ParseDuration("P1Y2M3DT4H5M6S")
	require.True(t, ok)
	assert.Equal(t, int64(14), v.DurMonths)
	assert.Equal(t, int64(3), v.DurDays)
	assert.Equal(t, "P1Y2M3DT4H5M6S", v.String())
}

func TestDurationZeroString(t *testing.T) {
	v := temporal.NewDuration(0, 0, 0, 0)
	assert.Equal(t, "PT0S", v.String())
}

func TestCompareOrdersSameKind(t *testing.T) {
	a, _ := temporal.ParseDate("2024-01-01")
	b, _ := temporal.ParseDate("2024-06-01")
	assert.Equal(t, -1, temporal.Compare(a, b))
	assert.Equal(t, 1, temporal.Compare(b, a))
	assert.Equal(t, 0, temporal.Compare(a, a))
}

func TestBetweenComputesMonthsDaysSeconds(t *testing.T) {
	a, _ := temporal.ParseDate("2024-01-01")
	b, _ := temporal.ParseDate("2024-03-15")
	d := temporal.Between(a, b)
	assert.Equal(t, int64(2), d.DurMonths)
	assert.Equal(t, int64(14), d.DurDays)
}

func TestComponentAccessors(t *testing.T) {
	v, _ := temporal.ParseDate("2024-03-15")
	y, ok := v.Component("year")
	require.True(t, ok)
	assert.Equal(t, int64(2024), y)

	_, ok = v.Component("hour")
	assert.False(t, ok)
}

func TestDurationComponentAccessors(t *testing.T) {
	v := temporal.NewDuration(14, 3, 3906, 0)
	months, ok := v.Component("months")
	require.True(t, ok)
	assert.Equal(t, int64(14), months)
	years, ok := v.Component("years")
	require.True(t, ok)
	assert.Equal(t, int64(1), years)
}

func TestFromEpochAndEpochMillis(t *testing.T) {
	v := temporal.FromEpoch(0, 0)
	assert.Equal(t, "1970-01-01T00:00:00Z", v.String())
	v2 := temporal.FromEpochMillis(1000)
	assert.Equal(t, temporal.FromEpoch(1, 0), v2)
}

func TestParseInvalidReturnsFalse(t *testing.T) {
	_, ok := temporal.ParseDate("not-a-date")
	assert.False(t, ok)
}
