package audio

import (
	"bytes"
	"io"

	"github.com/jonas747/ogg"
)

var (
	opusHeadMagic = []byte("OpusHead")
	opusTagsMagic = []byte("OpusTags")
)

// OpusPacketReader yields the audio packets of an Ogg/Opus stream, skipping the
// OpusHead and OpusTags header packets
type OpusPacketReader struct {
	packets *ogg.PacketDecoder
}

// NewOpusPacketReader wraps r
func NewOpusPacketReader(r io.Reader) *OpusPacketReader {
	return &OpusPacketReader{packets: ogg.NewPacketDecoder(ogg.NewDecoder(r))}
}

// Next returns the next audio packet. It returns io.EOF at the end of the stream.
func (o *OpusPacketReader) Next() ([]byte, error) {
	for {
		packet, _, err := o.packets.Decode()
		if err != nil {
			return nil, err
		}
		if bytes.HasPrefix(packet, opusHeadMagic) || bytes.HasPrefix(packet, opusTagsMagic) {
			continue
		}
		return packet, nil
	}
}
