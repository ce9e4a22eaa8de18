package audio

import (
	"sync"
	"testing"
)

func TestIsBluetooth(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"AirPods Pro", true},
		{"Jabra Elite 85t", true},
		{"WH-1000XM5 (Bluetooth)", true},
		{"Built-in Microphone", false},
		{"USB Audio Device", false},
	}
	for _, c := range cases {
		if got := IsBluetooth(c.name); got != c.want {
			t.Errorf("IsBluetooth(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFakeCaptureFeedsAllPCM(t *testing.T) {
	pcm := make([]byte, 10*fakeFrameSize*fakeBytesPerFrame+100)
	for i := range pcm {
		pcm[i] = byte(i % 251)
	}

	ctx := NewFakeContextFromPCM(pcm)
	dev, err := ctx.NewCapture(nil, CaptureConfig{SampleRate: 16000, Channels: 1})
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}

	var mu sync.Mutex
	var got []byte
	dev.SetCallback(func(data []byte, _ uint32) {
		mu.Lock()
		if len(got) < len(pcm) {
			got = append(got, data...)
		}
		mu.Unlock()
	})

	if err := dev.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	dev.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(got) < len(pcm) {
		t.Fatalf("received %d bytes, want at least %d", len(got), len(pcm))
	}
	for i := range pcm {
		if got[i] != pcm[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], pcm[i])
		}
	}
}

func TestFakeCaptureNoCallback(t *testing.T) {
	ctx := NewFakeContextFromPCM(make([]byte, 4096))
	dev, err := ctx.NewCapture(nil, CaptureConfig{SampleRate: 16000, Channels: 1})
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}
	if err := dev.Start(); err != nil {
		t.Fatalf("Start without callback: %v", err)
	}
	dev.Stop()
	dev.Close()
}

func TestFindDeviceEmptyQuery(t *testing.T) {
	ctx := NewFakeContextFromPCM(nil)
	d, err := FindDevice(ctx, "")
	if err != nil {
		t.Fatalf("FindDevice: %v", err)
	}
	if d != nil {
		t.Errorf("empty query should select system default, got %+v", d)
	}
}

func TestFindDeviceByName(t *testing.T) {
	ctx := NewFakeContextFromPCM(nil)
	d, err := FindDevice(ctx, "FAKE")
	if err != nil {
		t.Fatalf("FindDevice: %v", err)
	}
	if d == nil || d.ID != "fake" {
		t.Errorf("expected the fake device, got %+v", d)
	}
}
