package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 9*time.Hour, p.WorkStart)
	assert.Equal(t, 18*time.Hour, p.WorkEnd)
	assert.Equal(t, 1.0, p.BreakHours)
	assert.Nil(t, p.AllowedIPs)
	assert.True(t, p.Gate().Allowed("198.51.100.1"))
}

func TestNewPolicyOverlaysStoredValues(t *testing.T) {
	p, invalid := NewPolicy([]Setting{
		{Key: KeyWorkStartTime, Value: "08:30"},
		{Key: KeyWorkEndTime, Value: "17:15:30"},
		{Key: KeyBreakDuration, Value: "0.5"},
		{Key: KeyAllowedIPs, Value: "10.0.0.0/8"},
		{Key: "company_name", Value: "Acme"},
	})
	assert.Empty(t, invalid)
	assert.Equal(t, 8*time.Hour+30*time.Minute, p.WorkStart)
	assert.Equal(t, 17*time.Hour+15*time.Minute+30*time.Second, p.WorkEnd)
	assert.Equal(t, 0.5, p.BreakHours)
	require.NotNil(t, p.AllowedIPs)
	assert.True(t, p.Gate().Allowed("10.1.1.1"))
	assert.False(t, p.Gate().Allowed("192.168.0.1"))
}

func TestNewPolicyKeepsDefaultsForBadValues(t *testing.T) {
	p, invalid := NewPolicy([]Setting{
		{Key: KeyWorkStartTime, Value: "nine"},
		{Key: KeyBreakDuration, Value: "-2"},
	})
	assert.Len(t, invalid, 2)
	assert.Contains(t, invalid, KeyWorkStartTime)
	assert.Contains(t, invalid, KeyBreakDuration)
	assert.Equal(t, 9*time.Hour, p.WorkStart)
	assert.Equal(t, 1.0, p.BreakHours)
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue(KeyWorkStartTime, "09:00"))
	assert.NoError(t, ValidateValue(KeyWorkEndTime, "18:00:00"))
	assert.Error(t, ValidateValue(KeyWorkEndTime, "25:00"))
	assert.NoError(t, ValidateValue(KeyBreakDuration, "1.5"))
	assert.Error(t, ValidateValue(KeyBreakDuration, "lunch"))
	assert.NoError(t, ValidateValue("anything", "goes"))
}
