package ipgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUnsetAllowsAll(t *testing.T) {
	g := New(nil)
	assert.False(t, g.Configured())
	for _, ip := range []string{"203.0.113.9", "10.0.0.1", "::1", "garbage"} {
		assert.True(t, g.Allowed(ip), ip)
	}
}

func TestConfiguredRanges(t *testing.T) {
	g := New(strPtr("192.168.1.0/24, 10.0.0.7,2001:db8::/32"))

	assert.True(t, g.Allowed("192.168.1.44"))
	assert.True(t, g.Allowed("10.0.0.7"))
	assert.True(t, g.Allowed("2001:db8::1"))
	assert.True(t, g.Allowed("::ffff:192.168.1.10"))

	assert.False(t, g.Allowed("192.168.2.1"))
	assert.False(t, g.Allowed("10.0.0.8"))
	assert.False(t, g.Allowed("not-an-ip"))
}

func TestMalformedEntriesSkipped(t *testing.T) {
	g := New(strPtr("bogus, 300.1.1.1/8, 172.16.0.0/12"))
	assert.True(t, g.Allowed("172.16.5.5"))
	assert.False(t, g.Allowed("8.8.8.8"))
}

func TestHostBitsInCIDR(t *testing.T) {
	g := New(strPtr("10.1.2.3/16"))
	assert.True(t, g.Allowed("10.1.200.1"))
}

func TestEmptyListDeniesAll(t *testing.T) {
	g := New(strPtr(""))
	assert.True(t, g.Configured())
	assert.False(t, g.Allowed("127.0.0.1"))
}
