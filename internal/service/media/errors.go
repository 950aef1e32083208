package media

import (
	"errors"
	"fmt"
	"strings"
)

// Device is a capture device the companion can switch on.
type Device string

const (
	Camera     Device = "camera"
	Microphone Device = "microphone"
)

// ParseDevice accepts "camera" or "microphone" (also "mic").
func ParseDevice(raw string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "camera", "video":
		return Camera, nil
	case "microphone", "mic", "audio":
		return Microphone, nil
	default:
		return "", fmt.Errorf("unknown device %q", raw)
	}
}

// ErrorKind classifies device acquisition failures.
type ErrorKind string

const (
	KindDenied       ErrorKind = "denied"
	KindNotSupported ErrorKind = "not_supported"
	KindTimeout      ErrorKind = "timeout"
	KindNetwork      ErrorKind = "network"
	KindOther        ErrorKind = "other"
)

// DeviceError is returned by acquirers.
type DeviceError struct {
	Kind   ErrorKind
	Detail string
}

func (e *DeviceError) Error() string {
	if e.Detail == "" {
		return "media: " + string(e.Kind)
	}
	return fmt.Sprintf("media: %s: %s", e.Kind, e.Detail)
}

// FromBrowserError maps a DOMException name reported by the client to a DeviceError.
func FromBrowserError(name string) *DeviceError {
	name = strings.TrimSpace(name)
	var kind ErrorKind
	switch name {
	case "NotAllowedError", "PermissionDeniedError", "SecurityError", "not-allowed", "service-not-allowed":
		kind = KindDenied
	case "NotSupportedError", "NotFoundError", "DevicesNotFoundError", "TypeError", "audio-capture":
		kind = KindNotSupported
	case "TimeoutError", "timeout":
		kind = KindTimeout
	case "NetworkError", "network":
		kind = KindNetwork
	default:
		kind = KindOther
	}
	return &DeviceError{Kind: kind, Detail: name}
}

var bannerText = map[Device]map[ErrorKind]string{
	Camera: {
		KindDenied:       "Could not access camera. Please check your permissions.",
		KindNotSupported: "Camera is not supported on this device or browser.",
		KindTimeout:      "The camera did not respond in time. Please try again.",
		KindNetwork:      "Network error. Please check your internet connection.",
		KindOther:        "Could not access camera. Please check your permissions.",
	},
	Microphone: {
		KindDenied:       "Microphone access denied. Please check your browser permissions.",
		KindNotSupported: "Speech recognition is not supported in your browser. Please use Chrome, Edge, or Safari.",
		KindTimeout:      "Listening timed out. Please try again.",
		KindNetwork:      "Network error. Please check your internet connection.",
		KindOther:        "Could not access microphone. Please check your permissions.",
	},
}

// BannerMessage returns the user-facing text for an acquisition error.
func BannerMessage(device Device, err error) string {
	kind := KindOther
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		kind = devErr.Kind
	}
	if msg, ok := bannerText[device][kind]; ok {
		return msg
	}
	return fmt.Sprintf("Could not access %s. Please try again.", device)
}
