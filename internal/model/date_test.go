package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"plain date", `"2026-12-31"`, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", `"2026-12-31T20:00:00Z"`, time.Date(2026, 12, 31, 20, 0, 0, 0, time.UTC), false},
		{"local date time", `"2026-12-31T20:00:00"`, time.Date(2026, 12, 31, 20, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"invalid", `"next tuesday"`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %v", d.Time)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Date{Time: time.Date(2026, 2, 3, 15, 4, 5, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2026-02-03"`, string(b))

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestNewDate(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	d := NewDate(time.Date(2026, 6, 1, 0, 30, 0, 0, paris))
	assert.Equal(t, "2026-06-01", d.String())
	assert.Equal(t, time.UTC, d.Location())
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}
