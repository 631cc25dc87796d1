package common

// Placeholder names used when a value has no better rendering.
const (
	UnknownStr = "unknown"
	NilStr     = "<nil>"
)
