package levelmeter_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/vsariola/levelmeter"
)

func TestWavReadBack(t *testing.T) {
	buf := levelmeter.AudioBuffer{{0, 0}, {0.5, -0.5}, {0.25, 1}, {-1, 0.125}}
	for _, pcm16 := range []bool{false, true} {
		data, err := levelmeter.Wav(buf, pcm16)
		if err != nil {
			t.Fatalf("Wav(pcm16=%v) error: %v", pcm16, err)
		}
		got, rate, err := levelmeter.ReadWav(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("ReadWav(pcm16=%v) error: %v", pcm16, err)
		}
		if rate != levelmeter.WavSampleRate {
			t.Errorf("sample rate %d", rate)
		}
		if len(got) != len(buf) {
			t.Fatalf("pcm16=%v: got %d frames, want %d", pcm16, len(got), len(buf))
		}
		tol := float32(0)
		if pcm16 {
			tol = 1.0 / 16384
		}
		for i := range buf {
			for c := 0; c < 2; c++ {
				d := got[i][c] - buf[i][c]
				if d < -tol || d > tol {
					t.Errorf("pcm16=%v frame %d channel %d: got %v, want %v", pcm16, i, c, got[i][c], buf[i][c])
				}
			}
		}
	}
}

func monoPCM16(samples ...int16) []byte {
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+2*len(samples)))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, []uint16{1, 1})
	binary.Write(&b, binary.LittleEndian, []uint32{22050, 44100})
	binary.Write(&b, binary.LittleEndian, []uint16{2, 16})
	b.WriteString("LIST")
	binary.Write(&b, binary.LittleEndian, uint32(3))
	b.Write([]byte{1, 2, 3, 0}) // odd sized chunk is padded
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(2*len(samples)))
	binary.Write(&b, binary.LittleEndian, samples)
	return b.Bytes()
}

func TestReadWavMonoIsDuplicated(t *testing.T) {
	got, rate, err := levelmeter.ReadWav(bytes.NewReader(monoPCM16(16384, -32768)))
	if err != nil {
		t.Fatalf("ReadWav error: %v", err)
	}
	if rate != 22050 {
		t.Errorf("sample rate %d, want 22050", rate)
	}
	want := levelmeter.AudioBuffer{{0.5, 0.5}, {-1, -1}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReadWavRejectsGarbage(t *testing.T) {
	_, _, err := levelmeter.ReadWav(bytes.NewReader([]byte("RIFF\x00\x00\x00\x00AVI LIST")))
	if !errors.Is(err, levelmeter.ErrUnsupportedWav) {
		t.Fatalf("expected ErrUnsupportedWav, got %v", err)
	}
	data := monoPCM16(1, 2)
	data[20] = 2 // ADPCM
	if _, _, err := levelmeter.ReadWav(bytes.NewReader(data)); !errors.Is(err, levelmeter.ErrUnsupportedWav) {
		t.Fatalf("expected ErrUnsupportedWav for ADPCM, got %v", err)
	}
	if _, _, err := levelmeter.ReadWav(bytes.NewReader(data[:10])); err == nil {
		t.Fatal("expected an error for a truncated file")
	}
}

// extensible24 builds a stereo 24-bit WAVE_FORMAT_EXTENSIBLE file with the
// given data chunk size field.
func extensible24(dataSize uint32, frames ...[2]int32) []byte {
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(0xFFFFFFFF))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(40))
	binary.Write(&b, binary.LittleEndian, []uint16{0xFFFE, 2})
	binary.Write(&b, binary.LittleEndian, []uint32{48000, 48000 * 6})
	binary.Write(&b, binary.LittleEndian, []uint16{6, 24, 22, 24})
	binary.Write(&b, binary.LittleEndian, uint32(3)) // channel mask
	// KSDATAFORMAT_SUBTYPE_PCM
	b.Write([]byte{1, 0, 0, 0, 0, 0, 0x10, 0, 0x80, 0, 0, 0xaa, 0, 0x38, 0x9b, 0x71})
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, dataSize)
	for _, f := range frames {
		for _, v := range f {
			b.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
		}
	}
	return b.Bytes()
}

func TestReadWavExtensibleAndStreamed(t *testing.T) {
	frames := [][2]int32{{4194304, -8388608}, {0, 2097152}}
	want := levelmeter.AudioBuffer{{0.5, -1}, {0, 0.25}}
	for _, size := range []uint32{12, 0, 0xFFFFFFFF} {
		got, rate, err := levelmeter.ReadWav(bytes.NewReader(extensible24(size, frames...)))
		if err != nil {
			t.Fatalf("data size %#x: ReadWav error: %v", size, err)
		}
		if rate != 48000 {
			t.Errorf("data size %#x: sample rate %d", size, rate)
		}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Fatalf("data size %#x: got %v, want %v", size, got, want)
		}
	}
	if _, _, err := levelmeter.ReadWav(bytes.NewReader(extensible24(1<<30, frames...))); err == nil {
		t.Fatal("expected an error when the data chunk is shorter than declared")
	}
}
