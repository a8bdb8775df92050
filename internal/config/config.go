package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DSN         string        // libpq DSN; overrides the discrete settings below
	Host        string        // Postgres host
	Port        int           // Postgres port
	User        string        // Postgres user
	PasswordEnv string        // name of the env var holding the password
	Database    string        // database name
	Table       string        // target table, "table" or "schema.table"
	Label       string        // probe_label column value
	Interval    time.Duration // delay between attempt starts; must be > 0
	MaxAttempts int           // 0 = unlimited
	LogFile     string        // CSV attempt log path
	Timezone    string        // IANA zone for reported timestamps
	SetupOnly   bool          // bootstrap the table and exit
	LogDir      string        // zap log directory
	Addr        string        // status API bind address; empty disables it
	SlackURL    string        // Slack webhook; empty disables notifications
}

func FromEnv() Config {
	host := os.Getenv("PGHOST")
	if host == "" {
		host = "localhost"
	}

	port := 5432
	if v := os.Getenv("PGPORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			port = n
		}
	}

	user := os.Getenv("PGUSER")
	if user == "" {
		user = "postgres"
	}

	passwordEnv := os.Getenv("PROBE_PASSWORD_ENV")
	if passwordEnv == "" {
		passwordEnv = "PGPASSWORD"
	}

	dbname := os.Getenv("PGDATABASE")
	if dbname == "" {
		dbname = "postgres"
	}

	table := os.Getenv("PROBE_TABLE")
	if table == "" {
		table = "downtime_probe"
	}

	label := os.Getenv("PROBE_LABEL")
	if label == "" {
		label = "upgrade-probe"
	}

	interval := 100 * time.Millisecond
	if v := os.Getenv("PROBE_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}

	maxAttempts := 0
	if v := os.Getenv("PROBE_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxAttempts = n
		}
	}

	logFile := os.Getenv("PROBE_LOG_FILE")
	if logFile == "" {
		logFile = "postgres_downtime_probe.log"
	}

	tz := os.Getenv("PROBE_TZ")
	if tz == "" {
		tz = "America/New_York"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	return Config{
		DSN:         os.Getenv("PROBE_DSN"),
		Host:        host,
		Port:        port,
		User:        user,
		PasswordEnv: passwordEnv,
		Database:    dbname,
		Table:       table,
		Label:       label,
		Interval:    interval,
		MaxAttempts: maxAttempts,
		LogFile:     logFile,
		Timezone:    tz,
		SetupOnly:   os.Getenv("PROBE_SETUP_ONLY") == "true",
		LogDir:      logDir,
		Addr:        os.Getenv("API_ADDR"),
		SlackURL:    os.Getenv("SLACK_WEBHOOK"),
	}
}

// ConnString returns the DSN if set, otherwise a keyword/value connection
// string built from the discrete settings. The password is read from the
// configured env var and omitted when empty.
func (c Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	parts := []string{
		"host=" + c.Host,
		fmt.Sprintf("port=%d", c.Port),
		"user=" + c.User,
		"dbname=" + c.Database,
	}
	if pw := os.Getenv(c.PasswordEnv); pw != "" {
		parts = append(parts, "password="+quoteConnValue(pw))
	}
	return strings.Join(parts, " ")
}

func quoteConnValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
