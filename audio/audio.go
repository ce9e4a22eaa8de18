// Package audio abstracts microphone capture behind a small device
// interface with platform backends.
package audio

import "strings"

const WAVHeaderSize = 44

// DataCallback receives raw little-endian int16 PCM from the capture
// device. It runs on the backend's audio thread and must not block.
type DataCallback func(data []byte, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
}

var btKeywords = []string{
	"airpods", "beats", "bose", "wh-1000", "wf-1000",
	"jabra", "galaxy buds", "pixel buds", "powerbeats",
	"jbl ", "sennheiser momentum", "tozo", "skullcandy",
	"bluetooth", " bt ", " bt)", " bt]",
}

// IsBluetooth guesses from the device name whether it is a bluetooth
// headset. Those commonly drop to a low-bandwidth profile when the mic
// opens, so the picker warns about them.
func IsBluetooth(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range btKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FindDevice resolves a configured device name, matching first on
// exact ID, then on case-insensitive name substring. Returns nil for
// an empty query (system default).
func FindDevice(ctx Context, query string) (*DeviceInfo, error) {
	if query == "" {
		return nil, nil
	}
	devices, err := ctx.Devices()
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].ID == query {
			return &devices[i], nil
		}
	}
	lower := strings.ToLower(query)
	for i := range devices {
		if strings.Contains(strings.ToLower(devices[i].Name), lower) {
			return &devices[i], nil
		}
	}
	return nil, nil
}
