package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLRoundTripWorkedExamples(t *testing.T) {
	cases := []struct {
		seconds int64
		encoded string
	}{
		{0, "0w0d0h0m0s"},
		{694861, "1w1d1h1m1s"},
		{86400, "0w1d0h0m0s"},
		{59, "0w0d0h0m59s"},
	}
	for _, c := range cases {
		assert.Equal(t, c.encoded, EncodeTTL(c.seconds))

		decoded, err := DecodeTTL(c.encoded)
		require.NoError(t, err)
		assert.Equal(t, c.seconds, decoded)
	}
}

func TestDecodeTTLMissingSegmentsAreZero(t *testing.T) {
	decoded, err := DecodeTTL("1h")
	require.NoError(t, err)
	assert.Equal(t, int64(secondsPerHour), decoded)
}

func TestDecodeTTLMalformed(t *testing.T) {
	_, err := DecodeTTL("not-a-ttl")
	assert.Error(t, err)
}

func TestDecodeTTLEmpty(t *testing.T) {
	decoded, err := DecodeTTL("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), decoded)
}
