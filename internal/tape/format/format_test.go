package format

import (
	"encoding/binary"
	"testing"

	"github.com/speccygo/zx48/internal/tape"
	"github.com/stretchr/testify/require"
)

func tapBlockBytes(data []byte) []byte {
	length := make([]byte, 2)
	binary.LittleEndian.PutUint16(length, uint16(len(data)))
	return append(length, data...)
}

func TestParseTAPHeaderAndDataPilotCounts(t *testing.T) {
	header := append([]byte{0x00}, make([]byte, 18)...)
	data := append([]byte{0xFF}, []byte{1, 2, 3}...)
	raw := append(tapBlockBytes(header), tapBlockBytes(data)...)

	blocks, err := ParseTAP(raw)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	first := blocks[0].(tape.StandardOrTurbo)
	require.Equal(t, uint16(headerPilotCount), first.PilotCount)

	second := blocks[1].(tape.StandardOrTurbo)
	require.Equal(t, uint16(dataPilotCount), second.PilotCount)
}

func TestParseTAPTruncatedBlockErrors(t *testing.T) {
	raw := []byte{0x10, 0x00} // claims 16 bytes, has none
	_, err := ParseTAP(raw)
	require.Error(t, err)
}

func tzxHeader() []byte {
	return append([]byte(tzxSignature[:]), 1, 20)
}

func TestParseTZXStandardSpeedBlock(t *testing.T) {
	body := make([]byte, 0)
	body = append(body, 0x10)
	pause := make([]byte, 2)
	binary.LittleEndian.PutUint16(pause, 1000)
	body = append(body, pause...)
	length := make([]byte, 2)
	binary.LittleEndian.PutUint16(length, 2)
	body = append(body, length...)
	body = append(body, 0x00, 0xAB)

	raw := append(tzxHeader(), body...)
	blocks, err := ParseTZX(raw)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	b := blocks[0].(tape.StandardOrTurbo)
	require.Equal(t, uint16(headerPilotCount), b.PilotCount)
	require.Equal(t, []byte{0x00, 0xAB}, b.Data)
}

func TestParseTZXUnsupportedBlockStopsAndKeepsPrefix(t *testing.T) {
	pulseTone := []byte{0x12, 0x01, 0x00, 0x02, 0x00}
	unknown := []byte{0xFE}
	raw := append(tzxHeader(), append(pulseTone, unknown...)...)

	blocks, err := ParseTZX(raw)
	require.Error(t, err)
	require.Len(t, blocks, 1)
	require.IsType(t, tape.PureTone{}, blocks[0])
}

func TestParseTZXBadSignatureErrors(t *testing.T) {
	_, err := ParseTZX([]byte("not a tzx file"))
	require.Error(t, err)
}
