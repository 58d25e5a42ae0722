package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUTF8(t *testing.T) {
	t.Run("plain utf-8 passes through", func(t *testing.T) {
		in := []byte("Date,Amount\n2024-01-15,100\n")
		out, err := DecodeUTF8(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("utf-8 BOM is stripped", func(t *testing.T) {
		out, err := DecodeUTF8([]byte("\xEF\xBB\xBFhello"))
		require.NoError(t, err)
		assert.Equal(t, "hello", string(out))
	})

	t.Run("utf-16le with BOM", func(t *testing.T) {
		in := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
		out, err := DecodeUTF8(in)
		require.NoError(t, err)
		assert.Equal(t, "hi", string(out))
	})

	t.Run("windows-1252 fallback", func(t *testing.T) {
		out, err := DecodeUTF8([]byte("Caf\xe9 sales,100.00"))
		require.NoError(t, err)
		assert.Equal(t, "Café sales,100.00", string(out))
	})
}
