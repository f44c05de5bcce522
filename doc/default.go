package doc

import "errors"

var defaultDecoder Decoder = noopDecoder{}

// DefaultDecoder returns the process-wide default decoder. Decoder packages
// register themselves via SetDefaultDecoder from an init function; until one
// does, opening a document fails with a descriptive error.
func DefaultDecoder() Decoder { return defaultDecoder }

// SetDefaultDecoder installs the process-wide default decoder.
func SetDefaultDecoder(d Decoder) {
	if d != nil {
		defaultDecoder = d
	}
}

// Open decodes a document using the default decoder.
func Open(path string) (Document, error) {
	return defaultDecoder.Decode(path)
}

type noopDecoder struct{}

func (noopDecoder) Decode(path string) (Document, error) {
	return nil, &DecodeError{Path: path, Err: errors.New("no document decoder registered")}
}
