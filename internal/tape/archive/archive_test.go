package archive

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(name)
	require.NoError(t, err)
	_, err = f.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractZipFindsTapeMember(t *testing.T) {
	raw := buildZip(t, "loader.tap", []byte{0x01, 0x02, 0x03})
	data, name, err := ExtractZip(raw)
	require.NoError(t, err)
	require.Equal(t, "loader.tap", name)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, data)
}

func TestExtractZipIgnoresNonTapeMembers(t *testing.T) {
	raw := buildZip(t, "readme.txt", []byte("hello"))
	_, _, err := ExtractZip(raw)
	require.Error(t, err)
}

func TestExtractDispatchesByExtension(t *testing.T) {
	raw := buildZip(t, "game.tzx", []byte{0xAA})
	data, name, err := Extract("collection.zip", raw)
	require.NoError(t, err)
	require.Equal(t, "game.tzx", name)
	require.Equal(t, []byte{0xAA}, data)
}

func TestExtractUnknownExtensionErrors(t *testing.T) {
	_, _, err := Extract("mystery.rar", nil)
	require.Error(t, err)
}
