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
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
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
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_LeagueDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.League.NumTeams != 12 {
		t.Fatalf("unexpected default num teams: %d", cfg.League.NumTeams)
	}
	if cfg.League.BudgetPerTeam != 260 {
		t.Fatalf("unexpected default budget: %d", cfg.League.BudgetPerTeam)
	}
	if cfg.League.MinBid != 1 {
		t.Fatalf("unexpected default min bid: %d", cfg.League.MinBid)
	}
	if !cfg.League.UsePositionalAdjustments {
		t.Fatalf("expected positional adjustments on by default")
	}
}

func TestLoad_LeagueOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LEAGUE_NAME", "Deep Dynasty")
	t.Setenv("LEAGUE_NUM_TEAMS", "10")
	t.Setenv("LEAGUE_BUDGET_PER_TEAM", "300")
	t.Setenv("LEAGUE_DRAFT_MODE", "snake")
	t.Setenv("LEAGUE_HITTER_BUDGET_PCT", "0.7")
	t.Setenv("LEAGUE_ROSTER_SLOTS", "c:2, 1b:1, of:5, sp:4, rp:2")
	t.Setenv("LEAGUE_HITTING_CATEGORIES", "R,HR,RBI,SB,OBP")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.League.Name != "Deep Dynasty" {
		t.Fatalf("unexpected league name: %q", cfg.League.Name)
	}
	if cfg.League.NumTeams != 10 || cfg.League.BudgetPerTeam != 300 {
		t.Fatalf("unexpected league shape: %d teams, %d budget", cfg.League.NumTeams, cfg.League.BudgetPerTeam)
	}
	if string(cfg.League.Mode) != "snake" {
		t.Fatalf("unexpected draft mode: %s", cfg.League.Mode)
	}
	if cfg.League.HitterBudgetPct != 0.7 {
		t.Fatalf("unexpected hitter budget pct: %v", cfg.League.HitterBudgetPct)
	}
	if cfg.League.RosterSlots["C"] != 2 || cfg.League.RosterSlots["OF"] != 5 {
		t.Fatalf("unexpected roster slots: %+v", cfg.League.RosterSlots)
	}
	if len(cfg.League.HittingCategories) != 5 || cfg.League.HittingCategories[4] != "OBP" {
		t.Fatalf("unexpected hitting categories: %+v", cfg.League.HittingCategories)
	}
}

func TestLoad_LeagueValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("invalid draft mode", func(t *testing.T) {
		t.Setenv("LEAGUE_DRAFT_MODE", "keeper")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid LEAGUE_DRAFT_MODE")
		}
	})

	t.Run("hitter pct out of range", func(t *testing.T) {
		t.Setenv("LEAGUE_DRAFT_MODE", "auction")
		t.Setenv("LEAGUE_HITTER_BUDGET_PCT", "1.5")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for out-of-range LEAGUE_HITTER_BUDGET_PCT")
		}
	})

	t.Run("malformed roster slots", func(t *testing.T) {
		t.Setenv("LEAGUE_HITTER_BUDGET_PCT", "0.68")
		t.Setenv("LEAGUE_ROSTER_SLOTS", "C-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for malformed LEAGUE_ROSTER_SLOTS")
		}
	})

	t.Run("zero teams rejected", func(t *testing.T) {
		t.Setenv("LEAGUE_ROSTER_SLOTS", "")
		t.Setenv("LEAGUE_NUM_TEAMS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero LEAGUE_NUM_TEAMS")
		}
	})
}
