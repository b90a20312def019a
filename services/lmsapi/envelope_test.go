package lmsapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagedResultUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantNames []string
		wantItems int
		wantPages int
	}{
		{
			name:      "bare array",
			raw:       `[{"id":1,"name":"Ada"},{"id":2,"name":"Grace"}]`,
			wantNames: []string{"Ada", "Grace"},
			wantItems: 2,
			wantPages: 1,
		},
		{
			name:      "data wrapper",
			raw:       `{"data":[{"id":3,"name":"Linus"}]}`,
			wantNames: []string{"Linus"},
			wantItems: 1,
			wantPages: 1,
		},
		{
			name:      "pagination wrapper",
			raw:       `{"pagination":{"content":[{"id":4,"name":"Ken"}],"totalItems":41,"totalPages":5}}`,
			wantNames: []string{"Ken"},
			wantItems: 41,
			wantPages: 5,
		},
		{
			name:      "empty data wrapper",
			raw:       `{"data":[]}`,
			wantNames: []string{},
			wantItems: 0,
			wantPages: 1,
		},
		{
			name:      "null body",
			raw:       `null`,
			wantNames: nil,
			wantItems: 0,
			wantPages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res PagedResult[User]
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &res))

			names := make([]string, 0, len(res.Content))
			for _, usr := range res.Content {
				names = append(names, usr.Name)
			}
			if tt.wantNames == nil {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tt.wantNames, names)
			}
			assert.Equal(t, tt.wantItems, res.TotalItems)
			assert.Equal(t, tt.wantPages, res.TotalPages)
		})
	}
}

// Decoding the same normalized shape twice must be a no-op, whatever envelope
// the bytes arrived in.
func TestPagedResultUnmarshalIdempotent(t *testing.T) {
	raws := []string{
		`[{"id":1,"name":"Ada"}]`,
		`{"data":[{"id":1,"name":"Ada"}]}`,
		`{"pagination":{"content":[{"id":1,"name":"Ada"}],"totalItems":1,"totalPages":1}}`,
	}
	var first PagedResult[User]
	require.NoError(t, json.Unmarshal([]byte(raws[0]), &first))

	for _, raw := range raws[1:] {
		var res PagedResult[User]
		require.NoError(t, json.Unmarshal([]byte(raw), &res))
		assert.Equal(t, first.Content, res.Content)
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
	}{
		{name: "bare object", raw: `{"id":1,"name":"Ada"}`, wantName: "Ada"},
		{name: "data wrapper", raw: `{"data":{"id":1,"name":"Ada"}}`, wantName: "Ada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var usr User
			require.NoError(t, unwrap([]byte(tt.raw), &usr))
			assert.Equal(t, tt.wantName, usr.Name)
		})
	}
}
