package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"client"}, args...)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_addr": "license.example:443",
		"cache_dsn": "/tmp/cache.db",
		"request_timeout": "3s"
	}`), 0o600))

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			want: Config{ServerEndpointAddr: "127.0.0.1:50051", CacheDSN: "license.db", DefaultExpiryDays: 30, RequestTimeout: 10 * time.Second},
		},
		{
			name: "json",
			args: []string{"-c", path},
			want: Config{ServerEndpointAddr: "license.example:443", CacheDSN: "/tmp/cache.db", DefaultExpiryDays: 30, RequestTimeout: 3 * time.Second},
		},
		{
			name: "flags override json",
			args: []string{"-config", path, "-a", "localhost:1", "-n", "7", "-T", "1"},
			want: Config{ServerEndpointAddr: "localhost:1", CacheDSN: "/tmp/cache.db", DefaultExpiryDays: 7, RequestTimeout: time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			got := LoadConfig()
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	withArgs(t, "-n", "many")
	require.Panics(t, func() { parseFlags(&Config{}) })
}

func TestParseJson_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_expiry_days": "x"}`), 0o600))
	withArgs(t, "-c", path)
	require.Panics(t, func() { parseJson(&Config{}) })
}
