package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"record-compactor/core/compactor"

	"github.com/fxamacker/cbor/v2"
)

// Format names an artifact encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat accepts "json" or "cbor", case-insensitive. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCBOR:
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("unknown artifact format %q (want json or cbor)", s)
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	if f == FormatCBOR {
		return ".cbor"
	}
	return ".json"
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatCBOR {
		return "application/cbor"
	}
	return "application/json"
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".cbor") {
		return FormatCBOR
	}
	return FormatJSON
}

// encMode uses Core Deterministic Encoding: the same artifact always
// produces the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode writes the artifact to w.
func Encode(w io.Writer, a *compactor.Artifact, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to encode artifact as json: %w", err)
		}
		return nil
	case FormatCBOR:
		if err := encMode.NewEncoder(w).Encode(a); err != nil {
			return fmt.Errorf("failed to encode artifact as cbor: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown artifact format %q", format)
}

// Marshal returns the encoded artifact.
func Marshal(a *compactor.Artifact, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, a, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one artifact from r and checks its structural invariants.
// Syntax errors are reported as compactor.ErrMalformedArtifact too.
func Decode(r io.Reader, format Format) (*compactor.Artifact, error) {
	var a compactor.Artifact
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&a); err != nil {
			return nil, fmt.Errorf("%w: failed to decode json: %w", compactor.ErrMalformedArtifact, err)
		}
	case FormatCBOR:
		if err := decMode.NewDecoder(r).Decode(&a); err != nil {
			return nil, fmt.Errorf("%w: failed to decode cbor: %w", compactor.ErrMalformedArtifact, err)
		}
	default:
		return nil, fmt.Errorf("unknown artifact format %q", format)
	}
	if err := compactor.Validate(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Unmarshal decodes an artifact held in memory.
func Unmarshal(data []byte, format Format) (*compactor.Artifact, error) {
	return Decode(bytes.NewReader(data), format)
}
