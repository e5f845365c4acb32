package audio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/jonas747/ogg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeStream writes each packet of each group as its own Ogg page
func encodeStream(t *testing.T, pages ...[][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := ogg.NewEncoder(1, &buf)
	for i, packets := range pages {
		for _, p := range packets {
			require.NoError(t, enc.Encode(int64(i), p))
		}
	}
	return buf.Bytes()
}

func packets(p ...string) [][]byte {
	out := make([][]byte, len(p))
	for i, s := range p {
		out[i] = []byte(s)
	}
	return out
}

func TestOpusPacketReader_SplitsPackets(t *testing.T) {
	stream := encodeStream(t, packets("one", "two"), packets("three"))
	reader := NewOpusPacketReader(bytes.NewReader(stream))

	for _, want := range []string{"one", "two", "three"} {
		packet, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, want, string(packet))
	}

	_, err := reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpusPacketReader_LongPacket(t *testing.T) {
	long := bytes.Repeat([]byte{0xAB}, 600)
	reader := NewOpusPacketReader(bytes.NewReader(encodeStream(t, [][]byte{long})))

	packet, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, long, packet)
}

func TestOpusPacketReader_ExactMultipleOf255(t *testing.T) {
	exact := bytes.Repeat([]byte{1}, 255)
	reader := NewOpusPacketReader(bytes.NewReader(encodeStream(t, [][]byte{exact}, packets("next"))))

	got, err := reader.Next()
	require.NoError(t, err)
	assert.Len(t, got, 255)

	got, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "next", string(got))
}

func TestOpusPacketReader_SkipsOpusHeaders(t *testing.T) {
	stream := encodeStream(t,
		packets("OpusHead\x01\x02"),
		packets("OpusTags vendor"),
		[][]byte{{0xFC, 0xFF, 0xFE}},
	)

	packet, err := NewOpusPacketReader(bytes.NewReader(stream)).Next()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFC, 0xFF, 0xFE}, packet)
}

func TestPump(t *testing.T) {
	stream := encodeStream(t, packets("OpusHead", "OpusTags"), packets("a", "b"))

	var got []string
	err := Pump(bytes.NewReader(stream), func(p []byte) error {
		got = append(got, string(p))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestPump_GarbageSendsNothing(t *testing.T) {
	calls := 0
	_ = Pump(bytes.NewReader([]byte("this is not an ogg stream at all")), func(p []byte) error {
		calls++
		return nil
	})
	assert.Zero(t, calls)
}

func TestPump_StopsOnSendError(t *testing.T) {
	stream := encodeStream(t, packets("a", "b"))
	stop := errors.New("voice closed")

	calls := 0
	err := Pump(bytes.NewReader(stream), func(p []byte) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
