package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
	"github.com/rotodraft/rotodraft/internal/domain/league"
	"github.com/rotodraft/rotodraft/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	SeedDemoPlayers            bool
	LogLevel                   logging.Level

	League league.Settings
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 || writeTimeout <= 0 || shutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP timeouts must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	seedDemoPlayers, err := strconv.ParseBool(getEnv("SEED_DEMO_PLAYERS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_DEMO_PLAYERS: %w", err)
	}

	settings, err := loadLeagueSettings()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "rotodraft-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:    true,
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		ShutdownTimeout:            shutdownTimeout,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "rotodraft"),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		SeedDemoPlayers:            seedDemoPlayers,
		LogLevel:                   parseLogLevel(getEnv("LOG_LEVEL", "info")),
		League:                     settings,
	}

	return cfg, nil
}

// loadLeagueSettings starts from the standard 5x5 defaults and applies any
// env overrides, then validates the resulting shape.
func loadLeagueSettings() (league.Settings, error) {
	settings := league.Default()

	settings.Name = getEnv("LEAGUE_NAME", settings.Name)

	numTeams, err := getEnvAsInt("LEAGUE_NUM_TEAMS", settings.NumTeams)
	if err != nil {
		return league.Settings{}, fmt.Errorf("parse LEAGUE_NUM_TEAMS: %w", err)
	}
	settings.NumTeams = numTeams

	budget, err := getEnvAsInt("LEAGUE_BUDGET_PER_TEAM", settings.BudgetPerTeam)
	if err != nil {
		return league.Settings{}, fmt.Errorf("parse LEAGUE_BUDGET_PER_TEAM: %w", err)
	}
	settings.BudgetPerTeam = budget

	minBid, err := getEnvAsInt("LEAGUE_MIN_BID", settings.MinBid)
	if err != nil {
		return league.Settings{}, fmt.Errorf("parse LEAGUE_MIN_BID: %w", err)
	}
	settings.MinBid = minBid

	mode := strings.ToLower(strings.TrimSpace(getEnv("LEAGUE_DRAFT_MODE", string(settings.Mode))))
	switch draft.Mode(mode) {
	case draft.ModeAuction, draft.ModeSnake:
		settings.Mode = draft.Mode(mode)
	default:
		return league.Settings{}, fmt.Errorf("invalid LEAGUE_DRAFT_MODE %q: valid values are %s, %s", mode, draft.ModeAuction, draft.ModeSnake)
	}

	if raw := strings.TrimSpace(os.Getenv("LEAGUE_HITTER_BUDGET_PCT")); raw != "" {
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return league.Settings{}, fmt.Errorf("parse LEAGUE_HITTER_BUDGET_PCT: %w", err)
		}
		if pct <= 0 || pct >= 1 {
			return league.Settings{}, fmt.Errorf("LEAGUE_HITTER_BUDGET_PCT must be between 0 and 1 exclusive")
		}
		settings.HitterBudgetPct = pct
	}

	if raw := strings.TrimSpace(os.Getenv("LEAGUE_POSITIONAL_ADJUSTMENTS")); raw != "" {
		positional, err := strconv.ParseBool(raw)
		if err != nil {
			return league.Settings{}, fmt.Errorf("parse LEAGUE_POSITIONAL_ADJUSTMENTS: %w", err)
		}
		settings.UsePositionalAdjustments = positional
	}

	if slots, err := parseSlotMap(getEnv("LEAGUE_ROSTER_SLOTS", "")); err != nil {
		return league.Settings{}, fmt.Errorf("parse LEAGUE_ROSTER_SLOTS: %w", err)
	} else if len(slots) > 0 {
		settings.RosterSlots = slots
	}

	if cats := splitCSV(getEnv("LEAGUE_HITTING_CATEGORIES", "")); len(cats) > 0 {
		settings.HittingCategories = cats
	}
	if cats := splitCSV(getEnv("LEAGUE_PITCHING_CATEGORIES", "")); len(cats) > 0 {
		settings.PitchingCategories = cats
	}

	if err := settings.Validate(); err != nil {
		return league.Settings{}, fmt.Errorf("invalid league settings: %w", err)
	}

	return settings, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseSlotMap reads "C:1,1B:1,OF:3" style overrides for roster slots.
func parseSlotMap(raw string) (map[string]int, error) {
	out := make(map[string]int)
	parts := strings.Split(raw, ",")
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid slot item %q, expected slot:count", item)
		}

		slot := strings.ToUpper(strings.TrimSpace(segments[0]))
		if slot == "" {
			return nil, fmt.Errorf("empty slot code in item %q", item)
		}
		count, err := strconv.Atoi(strings.TrimSpace(segments[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid count in item %q: %w", item, err)
		}
		if count < 0 {
			return nil, fmt.Errorf("count must be >= 0 in item %q", item)
		}

		out[slot] = count
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
