package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/monotile/internal/config"
	"github.com/JaimeStill/monotile/internal/infrastructure"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestRoutesCmd(t *testing.T) {
	tests := []struct {
		variant string
		want    string
	}{
		{
			variant: "tiles",
			want:    "GET / -> home\nGET /continuum -> continuum\nGET /single-tile -> index\n",
		},
		{
			variant: "basic",
			want:    "GET / -> home\nGET /single-tile -> index\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			got, err := execute(t, "routes", "-c", missingConfig(t), "--variant", tt.variant)
			if err != nil {
				t.Fatalf("routes error = %v", err)
			}
			if got != tt.want {
				t.Errorf("routes output =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRoutesCmd_UnknownVariant(t *testing.T) {
	if _, err := execute(t, "routes", "-c", missingConfig(t), "--variant", "nope"); err == nil {
		t.Error("routes with unknown variant should fail")
	}
}

func TestRoutesCmd_ConfigFile(t *testing.T) {
	path := missingConfig(t)
	if err := os.WriteFile(path, []byte("[app]\nvariant = \"basic\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := execute(t, "routes", "-c", path)
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}
	if strings.Contains(got, "/continuum") {
		t.Errorf("routes output = %q, want basic variant", got)
	}
}

func TestVariantsCmd(t *testing.T) {
	got, err := execute(t, "variants")
	if err != nil {
		t.Fatalf("variants error = %v", err)
	}

	want := "basic\ncontinuum\nexplorer\nstudio\ntiles\n"
	if got != want {
		t.Errorf("variants output = %q, want %q", got, want)
	}
}

func TestVersionCmd(t *testing.T) {
	got, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(got, Version) {
		t.Errorf("version output = %q, want it to contain %q", got, Version)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	opts := &options{configPath: missingConfig(t)}
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&opts.host, "host", "", "")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "")

	if err := cmd.ParseFlags([]string{"-p", "8080", "--variant", "studio"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.App.Variant != "studio" {
		t.Errorf("Variant = %q, want studio", cfg.App.Variant)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want default 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Version != Version {
		t.Errorf("Version = %q, want %q", cfg.Version, Version)
	}
}

func TestLoadConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(config.EnvServerPort, "9000")

	opts := &options{configPath: missingConfig(t)}
	cmd := &cobra.Command{}
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "")
	if err := cmd.ParseFlags([]string{"--port", "8080"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want flag value 8080", cfg.Server.Port)
	}
}

func newTestServer(t *testing.T, variant string) *Server {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{Variant: variant}}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	srv, err := newServer(cfg, infrastructure.NewWithWriter(cfg, io.Discard))
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}
	return srv
}

func TestServer_Routing(t *testing.T) {
	srv := newTestServer(t, "tiles")

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/healthz", http.StatusOK, "OK"},
		{"/readyz", http.StatusServiceUnavailable, "NOT READY"},
		{"/", http.StatusOK, `data-template="home"`},
		{"/single-tile", http.StatusOK, `data-template="index"`},
		{"/continuum", http.StatusOK, `data-template="continuum"`},
		{"/missing", http.StatusNotFound, `data-template="404"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			srv.router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServer_AppRequestID(t *testing.T) {
	srv := newTestServer(t, "basic")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("app response missing X-Request-ID")
	}
}
