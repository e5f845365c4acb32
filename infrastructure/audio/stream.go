package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// Encoder transcodes a remote stream into Opus packets with ffmpeg
type Encoder struct {
	ffmpeg string
}

// NewEncoder creates an encoder using the ffmpeg binary at path
func NewEncoder(path string) *Encoder {
	return &Encoder{ffmpeg: path}
}

func (e *Encoder) args(url string) []string {
	return []string{
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", url,
		"-vn",
		"-loglevel", "error",
		"-c:a", "libopus",
		"-b:a", "96k",
		"-ar", "48000",
		"-ac", "2",
		"-frame_duration", "20",
		"-application", "audio",
		"-f", "ogg",
		"pipe:1",
	}
}

// Stream runs ffmpeg and calls send for every Opus packet until the stream ends or ctx is cancelled
func (e *Encoder) Stream(ctx context.Context, url string, send func(packet []byte) error) error {
	cmd := exec.CommandContext(ctx, e.ffmpeg, e.args(url)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open ffmpeg output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	streamErr := Pump(stdout, send)

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if streamErr != nil {
		return streamErr
	}
	if waitErr != nil {
		return fmt.Errorf("ffmpeg exited: %w", waitErr)
	}

	log.WithField("url", url).Debug("Audio stream finished")
	return nil
}

// Pump reads an Ogg/Opus stream from r and hands each packet to send
func Pump(r io.Reader, send func(packet []byte) error) error {
	reader := NewOpusPacketReader(r)
	for {
		packet, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read audio packet: %w", err)
		}
		if err := send(packet); err != nil {
			return err
		}
	}
}
