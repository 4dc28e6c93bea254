package mask

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURIPrefix is the scheme and media type of every encoded mask.
const DataURIPrefix = "data:image/svg+xml;base64,"

// EncodeDataURI wraps markup into a base64 data URI. Decoding the payload
// yields the markup byte for byte.
func EncodeDataURI(markup string) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString([]byte(markup))
}

// DecodeDataURI returns the markup embedded in a URI produced by
// EncodeDataURI.
func DecodeDataURI(uri string) (string, error) {
	payload, ok := strings.CutPrefix(uri, DataURIPrefix)
	if !ok {
		return "", fmt.Errorf("not an svg data uri: %.40q", uri)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode svg data uri: %w", err)
	}
	return string(data), nil
}
