package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocumentsInternalErrors(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]struct {
			Responses map[string]json.RawMessage `json:"responses"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	routes := map[string][]string{
		"/admindashboard":      {"get"},
		"/orders":              {"get"},
		"/products":            {"post"},
		"/products/{id}/image": {"get"},
		"/products/{id}/edit":  {"get"},
		"/products/{id}":       {"post", "delete"},
		"/orders/{id}/status":  {"post"},
	}
	for path, methods := range routes {
		for _, method := range methods {
			op, ok := doc.Paths[path][method]
			require.True(t, ok, "%s %s missing", method, path)
			assert.Contains(t, op.Responses, "500", "%s %s", method, path)
		}
	}
}
