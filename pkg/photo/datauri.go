package photo

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURI packs a payload and its media type into a self-contained data
// URI usable directly as an image source.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI reverses EncodeDataURI. It only understands the base64 form
// this package produces.
func DecodeDataURI(uri string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("photo: not a data URI")
	}
	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("photo: data URI is not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("photo: decode data URI payload: %w", err)
	}
	return mimeType, data, nil
}
