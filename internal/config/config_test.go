package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StandingsURL != "http://localhost:8000/table" {
		t.Fatalf("unexpected default StandingsURL: %q", cfg.StandingsURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("unexpected default PollInterval: %s", cfg.PollInterval)
	}
	if cfg.PollMaxInFlight != 4 {
		t.Fatalf("unexpected default PollMaxInFlight: %d", cfg.PollMaxInFlight)
	}
	if cfg.StandingsFetchTimeout != 0 {
		t.Fatalf("expected no fetch timeout by default, got %s", cfg.StandingsFetchTimeout)
	}
	if cfg.ServiceName != "draft-league-board" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected service defaults: name=%q addr=%q", cfg.ServiceName, cfg.HTTPAddr)
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel.String())
	}
}

func TestLoad_PollerConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STANDINGS_URL", "https://draft.example.com/table")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("POLL_MAX_IN_FLIGHT", "2")
	t.Setenv("STANDINGS_FETCH_TIMEOUT", "8s")
	t.Setenv("VIEW_CACHE_TTL", "1m")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StandingsURL != "https://draft.example.com/table" {
		t.Fatalf("unexpected StandingsURL: %q", cfg.StandingsURL)
	}
	if cfg.PollInterval != 30*time.Second || cfg.PollMaxInFlight != 2 {
		t.Fatalf("unexpected poll config: interval=%s max=%d", cfg.PollInterval, cfg.PollMaxInFlight)
	}
	if cfg.StandingsFetchTimeout != 8*time.Second || cfg.ViewCacheTTL != time.Minute {
		t.Fatalf("unexpected timeouts: fetch=%s cache=%s", cfg.StandingsFetchTimeout, cfg.ViewCacheTTL)
	}
	if cfg.LogLevel.String() != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel.String())
	}
}

func TestLoad_PollerConfigValidation(t *testing.T) {
	cases := map[string][2]string{
		"zero interval":      {"POLL_INTERVAL", "0s"},
		"bad interval":       {"POLL_INTERVAL", "soon"},
		"zero in flight":     {"POLL_MAX_IN_FLIGHT", "0"},
		"bad in flight":      {"POLL_MAX_IN_FLIGHT", "many"},
		"negative timeout":   {"STANDINGS_FETCH_TIMEOUT", "-1s"},
		"unsupported scheme": {"STANDINGS_URL", "ftp://draft.example.com/table"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_AcceptsLocalFileStandingsURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STANDINGS_URL", "file:///tmp/table.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StandingsURL != "file:///tmp/table.json" {
		t.Fatalf("unexpected StandingsURL: %q", cfg.StandingsURL)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "office-board")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "office-board" {
		t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}
