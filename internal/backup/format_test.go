package backup_test

import (
	"encoding/json"
	"testing"
	"time"

	"go-hrm/internal/backup"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalTolerantLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{raw: `"2024-03-15T10:30:00Z"`, want: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{raw: `"2024-03-15T17:30:00+07:00"`, want: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{raw: `"2024-03-15T10:30:00.1234567"`, want: time.Date(2024, 3, 15, 10, 30, 0, 123456700, time.UTC)},
		{raw: `"2024-03-15T10:30:00"`, want: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{raw: `"2024-03-15"`, want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		var ts backup.Timestamp
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &ts), tc.raw)
		assert.True(t, tc.want.Equal(ts.Time), tc.raw)
	}
}

func TestTimestamp_NullAndBlankAreZero(t *testing.T) {
	for _, raw := range []string{`null`, `""`} {
		var ts backup.Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts))
		assert.True(t, ts.IsZero())
	}

	var rec backup.Record
	require.NoError(t, json.Unmarshal([]byte(`{"DateOfBirth":null}`), &rec))
	assert.Nil(t, rec.DateOfBirth)
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts backup.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"15/03/2024"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`20240315`), &ts))
}

func TestMoney_AcceptsNumbersAndStrings(t *testing.T) {
	var m backup.Money
	require.NoError(t, json.Unmarshal([]byte(`1234.56`), &m))
	assert.True(t, decimal.RequireFromString("1234.56").Equal(m.Decimal))

	require.NoError(t, json.Unmarshal([]byte(`"99.9"`), &m))
	assert.True(t, decimal.RequireFromString("99.9").Equal(m.Decimal))

	out, err := json.Marshal(backup.NewMoney(decimal.RequireFromString("10.50")))
	require.NoError(t, err)
	assert.Equal(t, "10.5", string(out))
}

func TestIsSupportedSchemaVersion(t *testing.T) {
	assert.True(t, backup.IsSupportedSchemaVersion(1))
	assert.False(t, backup.IsSupportedSchemaVersion(0))
	assert.False(t, backup.IsSupportedSchemaVersion(2))
}
