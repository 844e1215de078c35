package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:       "crm-files",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     endpoint,
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("defaults", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(testConfig(""))
		require.NoError(t, err)
		assert.Equal(t, "crm-files", storage.Bucket())
		assert.Equal(t, defaultPresignExpiration, storage.presignExpiration)
		assert.Equal(t, "localhost:9000", storage.endpoint.Host)
	})

	t.Run("endpoint without scheme uses ssl flag", func(t *testing.T) {
		cfg := testConfig("s3.example.com")
		cfg.UseSSL = true
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https", storage.endpoint.Scheme)
	})
}

func TestS3ObjectStorageOptions(t *testing.T) {
	logger := zaptest.NewLogger(t)
	storage, err := NewS3ObjectStorage(testConfig("http://localhost:9000"),
		WithLogger(logger),
		WithPresignExpiration(time.Hour),
	)
	require.NoError(t, err)
	assert.Equal(t, logger, storage.logger)
	assert.Equal(t, time.Hour, storage.presignExpiration)
}

func TestS3ObjectStorage_ObjectURL(t *testing.T) {
	t.Run("path style", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(testConfig("http://localhost:9000"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/crm-files/logos/u1/logo.png", storage.ObjectURL("logos/u1/logo.png"))
	})

	t.Run("virtual hosted", func(t *testing.T) {
		cfg := testConfig("https://s3.ap-south-1.amazonaws.com")
		cfg.UsePathStyle = false
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://crm-files.s3.ap-south-1.amazonaws.com/logos/logo.png", storage.ObjectURL("/logos/logo.png"))
	})
}

func TestS3ObjectStorage_PresignGet(t *testing.T) {
	storage, err := NewS3ObjectStorage(testConfig("http://localhost:9000"), WithPresignExpiration(10*time.Minute))
	require.NoError(t, err)

	url, err := storage.PresignGet(context.Background(), "documents/u1/invoice/SO-1.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/crm-files/documents/u1/invoice/SO-1.pdf?"))
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.Contains(t, url, "X-Amz-Signature=")

	_, err = storage.PresignGet(context.Background(), "")
	assert.Error(t, err)
}

func TestS3ObjectStorage_Upload(t *testing.T) {
	var (
		mu          sync.Mutex
		gotMethod   string
		gotPath     string
		gotBody     string
		contentType string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotMethod, gotPath, gotBody = r.Method, r.URL.Path, string(body)
		contentType = r.Header.Get("Content-Type")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	storage, err := NewS3ObjectStorage(testConfig(server.URL))
	require.NoError(t, err)

	require.NoError(t, storage.Upload(context.Background(), "logos/u1/logo.png", []byte("png-bytes"), "image/png"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/crm-files/logos/u1/logo.png", gotPath)
	assert.Contains(t, gotBody, "png-bytes")
	assert.Equal(t, "image/png", contentType)
}

func TestS3ObjectStorage_KeyValidation(t *testing.T) {
	storage, err := NewS3ObjectStorage(testConfig("http://localhost:9000"))
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, storage.Upload(ctx, "", nil, "image/png"), ErrEmptyKey)
	_, err = storage.PresignGet(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		want     string
		wantErr  bool
	}{
		{name: "empty uses local minio", want: "http://localhost:9000"},
		{name: "bare host plain", endpoint: "minio:9000", want: "http://minio:9000"},
		{name: "bare host with ssl", endpoint: "s3.ap-south-1.amazonaws.com", useSSL: true, want: "https://s3.ap-south-1.amazonaws.com"},
		{name: "explicit scheme wins over ssl flag", endpoint: "http://rustfs:9000", useSSL: true, want: "http://rustfs:9000"},
		{name: "no host", endpoint: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := resolveEndpoint(&config.StorageConfig{Endpoint: tt.endpoint, UseSSL: tt.useSSL})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}
