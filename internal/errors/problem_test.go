package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemDetails_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		problem *ProblemDetails
		want    map[string]interface{}
		absent  []string
	}{
		{
			name:    "minimal",
			problem: NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", ""),
			want: map[string]interface{}{
				"type":   TypeNotFound,
				"title":  "Not Found",
				"status": float64(404),
			},
			absent: []string{"detail", "instance"},
		},
		{
			name: "with extensions",
			problem: NewProblemDetails(http.StatusNotFound, TypeWorkshopColumnNotFound, "Not Found",
				"no column found for Taller 4", "/api/dashboard/4").
				WithExtension("candidates", []string{"Taller 1: Compostaje"}).
				WithExtension("trace_id", "abc"),
			want: map[string]interface{}{
				"type":       TypeWorkshopColumnNotFound,
				"detail":     "no column found for Taller 4",
				"instance":   "/api/dashboard/4",
				"candidates": []interface{}{"Taller 1: Compostaje"},
				"trace_id":   "abc",
			},
		},
		{
			name: "extensions cannot override standard members",
			problem: NewProblemDetails(http.StatusBadGateway, TypeSourceUnavailable, "Bad Gateway", "", "").
				WithExtension("status", 200),
			want: map[string]interface{}{"status": float64(502)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.problem)
			require.NoError(t, err)

			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &got))

			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, got, k)
			}
		})
	}
}

func TestProblemDetails_WithExtensionNilMap(t *testing.T) {
	pd := &ProblemDetails{Status: http.StatusTeapot}
	pd.WithExtension("k", "v")
	assert.Equal(t, "v", pd.Extensions["k"])
}

func TestProblemDetails_Render(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/x", nil)

	require.NoError(t, render.Render(w, r, NewProblemDetails(http.StatusBadGateway, TypeSourceUnavailable, "Bad Gateway", "down", "/x")))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), TypeSourceUnavailable)
}

func TestWriteProblem(t *testing.T) {
	w := httptest.NewRecorder()
	WriteProblem(w, NewProblemDetails(http.StatusTooManyRequests, TypeRateLimit, "Too Many Requests", "", ""))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, ProblemContentType, w.Header().Get("Content-Type"))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, TypeRateLimit, got["type"])
}
