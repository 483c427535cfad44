package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/promptbench/pkg/storage"
)

func newLocal(t *testing.T) storage.System {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys, err := storage.New(&storage.Config{Provider: storage.ProviderLocal, Dir: t.TempDir()}, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sys
}

func TestLocalLifecycle(t *testing.T) {
	sys := newLocal(t)
	ctx := context.Background()
	key := "images/0f8c.png"

	if err := sys.Upload(ctx, key, strings.NewReader("png-bytes"), "image/png"); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	exists, err := sys.Exists(ctx, key)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	obj, err := sys.Download(ctx, key)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := io.ReadAll(obj.Body)
	obj.Body.Close()

	if string(data) != "png-bytes" {
		t.Errorf("body = %q", data)
	}
	if obj.ContentType != "image/png" || obj.ContentLength != int64(len("png-bytes")) {
		t.Errorf("object = %s %d", obj.ContentType, obj.ContentLength)
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := sys.Delete(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete err = %v", err)
	}
	if _, err := sys.Download(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Download after delete err = %v", err)
	}
}

func TestKeyValidation(t *testing.T) {
	sys := newLocal(t)
	ctx := context.Background()

	tests := []struct {
		key    string
		want   error
		status int
	}{
		{"", storage.ErrEmptyKey, http.StatusBadRequest},
		{"../secrets", storage.ErrInvalidKey, http.StatusBadRequest},
		{"images/../../x", storage.ErrInvalidKey, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := sys.Download(ctx, tt.key)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if got := storage.MapHTTPStatus(err); got != tt.status {
				t.Errorf("status = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestUnknownProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := storage.New(&storage.Config{Provider: "s3"}, logger); err == nil {
		t.Error("expected error")
	}
}

func TestConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, c storage.Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c storage.Config) {
				if c.Provider != storage.ProviderLocal || c.Dir != "./app_data/attachments" || c.MaxRetries != 3 {
					t.Errorf("config = %+v", c)
				}
			},
		},
		{
			name: "env overrides",
			env:  map[string]string{"TEST_PROVIDER": "azure", "TEST_CONN": "UseDevelopmentStorage=true"},
			check: func(t *testing.T, c storage.Config) {
				if c.Provider != storage.ProviderAzure || c.ConnectionString == "" {
					t.Errorf("config = %+v", c)
				}
			},
		},
		{
			name:    "azure without credentials",
			cfg:     storage.Config{Provider: storage.ProviderAzure},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     storage.Config{Provider: "ftp"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			c := tt.cfg
			err := c.Finalize(&storage.Env{Provider: "TEST_PROVIDER", ConnectionString: "TEST_CONN"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}
