package specconv

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// decodeJSON parses a JSON object the way an HTTP handler would, so tests
// exercise the converters against real encoding/json value shapes.
func decodeJSON(t *testing.T, body string) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload
}
