package sfx

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(cues) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(cues))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestStreamerIsFinite(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Streamer(name)
			if err != nil {
				t.Fatalf("Streamer: %v", err)
			}

			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				for i := 0; i < n; i++ {
					if buf[i][0] < -1 || buf[i][0] > 1 {
						t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
					}
				}
				total += n
				if !ok {
					break
				}
				if total > SampleRate.N(Length(name))*2 {
					t.Fatal("stream did not end")
				}
			}

			if want := SampleRate.N(Length(name)); total < want-len(cues[name].notes) || total > want {
				t.Errorf("streamed %d samples, want about %d", total, want)
			}
		})
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	var f memFile
	if err := Encode(&f, "rotate"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b := f.Bytes()
	if len(b) <= 44 {
		t.Fatalf("wav too short: %d bytes", len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Fatalf("bad magic: %q %q", b[0:4], b[8:12])
	}
	if data := binary.LittleEndian.Uint32(b[40:44]); int(data) != len(b)-44 {
		t.Errorf("data size = %d, want %d", data, len(b)-44)
	}
	if ch := binary.LittleEndian.Uint16(b[22:24]); ch != 1 {
		t.Errorf("channels = %d, want 1", ch)
	}
	if sr := binary.LittleEndian.Uint32(b[24:28]); sr != uint32(SampleRate) {
		t.Errorf("sample rate = %d, want %d", sr, SampleRate)
	}
}

func TestUnknownSound(t *testing.T) {
	if _, err := Streamer("kazoo"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("Streamer error = %v", err)
	}

	var bank Bank
	if _, err := bank.WAV("kazoo"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("WAV error = %v", err)
	}
}

func TestBankRendersEveryCue(t *testing.T) {
	var bank Bank
	for _, name := range Names() {
		data, err := bank.WAV(name)
		if err != nil {
			t.Fatalf("WAV(%s): %v", name, err)
		}
		if string(data[:4]) != "RIFF" {
			t.Errorf("%s: not a RIFF file", name)
		}
	}

	a, _ := bank.WAV("clear")
	b, _ := bank.WAV("clear")
	if &a[0] != &b[0] {
		t.Error("bank re-rendered a cached cue")
	}
}

func TestMemFileSeek(t *testing.T) {
	var f memFile
	f.Write([]byte("hello world"))
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	f.Write([]byte("J"))
	if got := string(f.Bytes()); got != "Jello world" {
		t.Errorf("got %q", got)
	}
	if pos, _ := f.Seek(-5, io.SeekEnd); pos != 6 {
		t.Errorf("SeekEnd pos = %d", pos)
	}
	if _, err := f.Seek(-1, io.SeekStart); err == nil {
		t.Error("negative seek succeeded")
	}
}
