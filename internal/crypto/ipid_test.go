package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPID(t *testing.T) {
	a := IPID("192.0.2.10:50000", "salt")
	assert.Len(t, a, IPIDLength)
	assert.Equal(t, a, IPID("192.0.2.10:50001", "salt"), "port is ignored")
	assert.Equal(t, a, IPID("192.0.2.10", "salt"))
	assert.NotEqual(t, a, IPID("192.0.2.11:50000", "salt"))
	assert.NotEqual(t, a, IPID("192.0.2.10:50000", "pepper"))
}

func TestIPID_IPv6(t *testing.T) {
	assert.Equal(t, IPID("[2001:db8::1]:27016", ""), IPID("2001:db8::1", ""))
}

func TestIPID_LongSalt(t *testing.T) {
	long := string(make([]byte, 100))
	assert.Len(t, IPID("192.0.2.10:1", long), IPIDLength)
}
