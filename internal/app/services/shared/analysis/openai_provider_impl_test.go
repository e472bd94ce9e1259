package analysis

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProvider(baseURL string) *openAIProvider {
	provider := NewOpenAIProvider(&config.InternalConfig{
		App: config.App{Timezone: "Asia/Almaty"},
		Analysis: config.Analysis{
			BaseUrl:              baseURL,
			ApiKey:               "sk-test",
			TranscriptionModel:   "whisper-1",
			CompletionModel:      "gpt-4o",
			Language:             "ru",
			TimeoutInSeconds:     5,
			MaxRequestsPerSecond: 100,
		},
	}, zap.NewNop()).(*openAIProvider)
	provider.now = func() time.Time { return time.Date(2024, 5, 20, 3, 0, 0, 0, time.UTC) }
	return provider
}

func TestOpenAIProvider_Analyze(t *testing.T) {
	var completionBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case transcriptionPath:
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "whisper-1", r.FormValue("model"))
			assert.Equal(t, "ru", r.FormValue("language"))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			content, _ := io.ReadAll(file)
			assert.Equal(t, "visit.webm", header.Filename)
			assert.Equal(t, []byte("audio-bytes"), content)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"text":"Пациент Иванов, жалобы на боль в колене, 13 лазеров"}`))
		case completionPath:
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &completionBody))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"patientName\":\"Иванов\",\"procedures\":{\"HILT\":13}}"}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	result, err := newTestProvider(server.URL).Analyze(context.Background(), &models.AudioInput{
		FileName: "visit.webm",
		Content:  []byte("audio-bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Пациент Иванов, жалобы на боль в колене, 13 лазеров", result.Transcript)
	assert.Equal(t, "Иванов", result.Fields["patientName"])
	assert.Equal(t, map[string]interface{}{"HILT": float64(13)}, result.Fields["procedures"])

	assert.Equal(t, "gpt-4o", completionBody["model"])
	assert.Equal(t, float64(0), completionBody["temperature"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, completionBody["response_format"])
	messages := completionBody["messages"].([]interface{})
	require.Len(t, messages, 2)
	system := messages[0].(map[string]interface{})["content"].(string)
	assert.True(t, strings.Contains(system, "сегодня: 20.05.2024"))
	assert.Equal(t, "Пациент Иванов, жалобы на боль в колене, 13 лазеров", messages[1].(map[string]interface{})["content"])
}

func TestOpenAIProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantDev string
	}{
		{
			name: "transcription rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
			},
			wantDev: "analysis provider call transcription failed: status 401: Incorrect API key provided",
		},
		{
			name: "empty completion",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if r.URL.Path == transcriptionPath {
					_, _ = w.Write([]byte(`{"text":"..."}`))
					return
				}
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
			wantDev: constvars.ErrDevAnalysisEmptyContent,
		},
		{
			name: "completion is not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if r.URL.Path == transcriptionPath {
					_, _ = w.Write([]byte(`{"text":"..."}`))
					return
				}
				_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"not json"}}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			result, err := newTestProvider(server.URL).Analyze(context.Background(), &models.AudioInput{Content: []byte("a")})

			assert.Nil(t, result)
			customErr, ok := err.(*exceptions.CustomError)
			require.True(t, ok)
			assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
			assert.Equal(t, constvars.ErrCodeUpstreamUnavailable, customErr.ErrorCode)
			if tt.wantDev != "" {
				assert.Equal(t, tt.wantDev, customErr.DevMessage)
			}
		})
	}
}

func TestOpenAIProvider_NoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Analyze(context.Background(), &models.AudioInput{Content: []byte("a")})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestOpenAIProvider_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called with a cancelled context")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestProvider(server.URL).Analyze(ctx, &models.AudioInput{Content: []byte("a")})

	assert.Error(t, err)
}
