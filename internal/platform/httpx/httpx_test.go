package httpx

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestDecodeJSON(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"name":"Ana","email":"ana@example.com"}`, ""},
		{"malformed", `{"name":`, "invalid json"},
		{"unknown field", `{"name":"Ana","extra":1}`, "invalid json"},
		{"missing required", `{"email":"ana@example.com"}`, `name: failed "required"`},
		{"bad email", `{"name":"Ana","email":"nope"}`, `email: failed "email"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			var dst sampleRequest
			err := DecodeJSON(r, &dst)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ana", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=5&bad=x&neg=-1", nil)

	n, err := QueryInt(r, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = QueryInt(r, "missing", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = QueryInt(r, "bad", 10)
	assert.EqualError(t, err, "bad must be a positive integer")
	_, err = QueryInt(r, "neg", 10)
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, 201, map[string]string{"id": "x"})

	assert.Equal(t, 201, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"x"}`, w.Body.String())
}
