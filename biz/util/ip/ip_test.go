package ip

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPv4Hex(t *testing.T) {
	h := IPv4Hex()
	assert.Len(t, h, 8)
	_, err := hex.DecodeString(h)
	assert.NoError(t, err)
	assert.Equal(t, h, IPv4Hex())
}
