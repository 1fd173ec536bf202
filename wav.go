package levelmeter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const WavSampleRate = 44100

var ErrUnsupportedWav = errors.New("unsupported wav format")

// Wav encodes buffer as a 44.1 kHz stereo .wav file, either as 16-bit
// integers (pcm16 = true) or 32-bit floats.
func Wav(buffer AudioBuffer, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	wavHeader(len(buffer)*2, pcm16, buf)
	if err := rawToBuffer(buffer, pcm16, buf); err != nil {
		return nil, fmt.Errorf("Wav failed: %w", err)
	}
	return buf.Bytes(), nil
}

func rawToBuffer(data AudioBuffer, pcm16 bool, buf *bytes.Buffer) error {
	var err error
	if pcm16 {
		int16data := make([][2]int16, len(data))
		for i, v := range data {
			int16data[i][0] = toInt16(v[0])
			int16data[i][1] = toInt16(v[1])
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		err = binary.Write(buf, binary.LittleEndian, data)
	}
	if err != nil {
		return fmt.Errorf("could not binary write data to binary buffer: %w", err)
	}
	return nil
}

func toInt16(v float32) int16 {
	x := int(v * math.MaxInt16)
	return int16(min(max(x, math.MinInt16), math.MaxInt16))
}

// wavHeader writes a wave header for either float32 or int16 .wav file. The
// length is given in samples (L + R counted separately).
func wavHeader(bufferLength int, pcm16 bool, buf *bytes.Buffer) {
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	numChannels := 2
	sampleRate := WavSampleRate
	var bytesPerSample, chunkSize, fmtChunkSize, waveFormat int
	var factChunk bool
	if pcm16 {
		bytesPerSample = 2
		chunkSize = 36 + bytesPerSample*bufferLength
		fmtChunkSize = 16
		waveFormat = 1 // PCM
	} else {
		bytesPerSample = 4
		chunkSize = 50 + bytesPerSample*bufferLength
		fmtChunkSize = 18
		waveFormat = 3 // IEEE float
		factChunk = true
	}
	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(chunkSize))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(waveFormat))
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*numChannels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(numChannels*bytesPerSample))            // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(8*bytesPerSample))                      // bits per sample
	if fmtChunkSize > 16 {
		binary.Write(buf, binary.LittleEndian, uint16(0)) // size of extension
	}
	if factChunk {
		buf.Write([]byte("fact"))
		binary.Write(buf, binary.LittleEndian, uint32(4))            // fact chunk size
		binary.Write(buf, binary.LittleEndian, uint32(bufferLength)) // sample length
	}
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(bytesPerSample*bufferLength))
}

const (
	formatExtensible = 0xFFFE
	streamingSize    = 0xFFFFFFFF
	maxFmtSize       = 1024
)

type wavFormat struct {
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ReadWav decodes a .wav file with 16 or 24 bit integer or 32 bit float
// samples. Mono files are duplicated to both channels; channels beyond the
// second are dropped.
func ReadWav(r io.Reader) (buffer AudioBuffer, sampleRate int, err error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, 0, fmt.Errorf("reading RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("%w: not a RIFF/WAVE file", ErrUnsupportedWav)
	}
	var format *wavFormat
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return nil, 0, fmt.Errorf("reading chunk header: %w", err)
		}
		size := binary.LittleEndian.Uint32(chunk[4:])
		switch string(chunk[:4]) {
		case "fmt ":
			if size < 16 || size > maxFmtSize {
				return nil, 0, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWav, size)
			}
			chunk := make([]byte, int64(size)+int64(size&1))
			if _, err := io.ReadFull(r, chunk); err != nil {
				return nil, 0, fmt.Errorf("reading fmt chunk: %w", err)
			}
			if format, err = parseWavFormat(chunk[:size]); err != nil {
				return nil, 0, err
			}
		case "data":
			if format == nil {
				return nil, 0, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedWav)
			}
			var data []byte
			if size == 0 || size == streamingSize {
				// written by a streaming tool that never patched the size
				data, err = io.ReadAll(r)
			} else if data, err = io.ReadAll(io.LimitReader(r, int64(size))); err == nil && int64(len(data)) < int64(size) {
				err = io.ErrUnexpectedEOF
			}
			if err != nil {
				return nil, 0, fmt.Errorf("reading data chunk: %w", err)
			}
			buffer, err := decodeSamples(data, format)
			if err != nil {
				return nil, 0, err
			}
			return buffer, int(format.SampleRate), nil
		default:
			if err := skip(r, int64(size)+int64(size&1)); err != nil {
				return nil, 0, err
			}
		}
	}
}

// parseWavFormat decodes a fmt chunk. WAVE_FORMAT_EXTENSIBLE is mapped to
// the format code stored in the first two bytes of its subformat GUID.
func parseWavFormat(chunk []byte) (*wavFormat, error) {
	f := new(wavFormat)
	if err := binary.Read(bytes.NewReader(chunk[:16]), binary.LittleEndian, f); err != nil {
		return nil, fmt.Errorf("reading fmt chunk: %w", err)
	}
	if f.Format == formatExtensible {
		if len(chunk) < 40 {
			return nil, fmt.Errorf("%w: extensible fmt chunk too short", ErrUnsupportedWav)
		}
		f.Format = binary.LittleEndian.Uint16(chunk[24:26])
	}
	return f, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("skipping wav chunk: %w", err)
	}
	return nil
}

func decodeSamples(data []byte, f *wavFormat) (AudioBuffer, error) {
	if f.Channels == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrUnsupportedWav)
	}
	var sample func(b []byte) float32
	switch {
	case f.Format == 1 && f.BitsPerSample == 16:
		sample = func(b []byte) float32 {
			return float32(int16(binary.LittleEndian.Uint16(b))) / 32768
		}
	case f.Format == 1 && f.BitsPerSample == 24:
		sample = func(b []byte) float32 {
			v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			return float32(v) / 8388608
		}
	case f.Format == 3 && f.BitsPerSample == 32:
		sample = func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		}
	default:
		return nil, fmt.Errorf("%w: format %d with %d bits per sample", ErrUnsupportedWav, f.Format, f.BitsPerSample)
	}
	bytesPerSample := int(f.BitsPerSample) / 8
	frameSize := bytesPerSample * int(f.Channels)
	frames := len(data) / frameSize
	ret := make(AudioBuffer, frames)
	for i := range ret {
		frame := data[i*frameSize:]
		left := sample(frame)
		right := left
		if f.Channels > 1 {
			right = sample(frame[bytesPerSample:])
		}
		ret[i] = [2]float32{left, right}
	}
	return ret, nil
}
