package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"plain date", "2026-09-01", NewDate(2026, time.September, 1), false},
		{"rfc3339", "2026-09-01T14:30:00Z", NewDate(2026, time.September, 1), false},
		{"rfc3339 with offset", "2026-09-01T23:30:00+02:00", NewDate(2026, time.September, 1), false},
		{"belgian format", "01/09/2026", NewDate(2026, time.September, 1), false},
		{"empty is zero", "", Date{}, false},
		{"whitespace is zero", "  ", Date{}, false},
		{"garbage", "september first", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Due Date `json:"due"`
	}

	t.Run("unmarshal date", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"due":"2026-02-01"}`), &p))
		assert.Equal(t, NewDate(2026, time.February, 1), p.Due)
	})

	t.Run("unmarshal null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"due":null}`), &p))
		assert.True(t, p.Due.IsZero())
	})

	t.Run("marshal drops the time part", func(t *testing.T) {
		out, err := json.Marshal(payload{Due: DateOf(time.Date(2026, time.February, 1, 18, 45, 0, 0, time.UTC))})
		require.NoError(t, err)
		assert.JSONEq(t, `{"due":"2026-02-01"}`, string(out))
	})

	t.Run("marshal zero as null", func(t *testing.T) {
		out, err := json.Marshal(payload{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"due":null}`, string(out))
	})
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2026, time.March, 15), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
