package tapeid

import (
	"testing"

	"github.com/speccygo/zx48/internal/tape"
	"github.com/stretchr/testify/require"
)

func TestOfIsStableAndContentSensitive(t *testing.T) {
	a := Of([]byte{1, 2, 3})
	b := Of([]byte{1, 2, 3})
	c := Of([]byte{1, 2, 4})
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

func TestCacheGetPutRoundTrip(t *testing.T) {
	cache := NewCache[[]tape.Block]()
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	_, ok := cache.Get(raw)
	require.False(t, ok)

	blocks := []tape.Block{tape.PureTone{PulseLength: 10, PulseCount: 2}}
	cache.Put(raw, blocks)

	got, ok := cache.Get(raw)
	require.True(t, ok)
	require.Equal(t, blocks, got)
}
