// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	dsn := strings.TrimSpace(os.Getenv("PROBE_DSN"))
	host := strings.TrimSpace(os.Getenv("PGHOST"))
	port := strings.TrimSpace(os.Getenv("PGPORT"))
	passwordEnv := strings.TrimSpace(os.Getenv("PROBE_PASSWORD_ENV"))
	interval := strings.TrimSpace(os.Getenv("PROBE_INTERVAL_MS"))
	table := strings.TrimSpace(os.Getenv("PROBE_TABLE"))

	if dsn != "" {
		ok("PROBE_DSN present (discrete PG* settings will be ignored)")
	} else {
		if host == "" {
			warn("PGHOST empty; defaulting to localhost.")
		} else {
			ok("PGHOST=" + host)
		}
		if port != "" {
			if n, err := strconv.Atoi(port); err != nil || n <= 0 {
				fail("PGPORT is not a positive integer: " + port)
			}
		}
	}

	if passwordEnv == "" {
		passwordEnv = "PGPASSWORD"
	}
	if os.Getenv(passwordEnv) == "" {
		warn(passwordEnv + " is empty — connection will be attempted without a password.")
	} else {
		ok(passwordEnv + " present")
	}

	if interval != "" {
		if ms, err := strconv.Atoi(interval); err != nil || ms <= 0 {
			fail("PROBE_INTERVAL_MS must be a positive integer, got: " + interval)
		} else {
			ok("PROBE_INTERVAL_MS=" + interval)
		}
	}

	if table != "" {
		if n := len(strings.Split(table, ".")); n > 2 {
			fail("PROBE_TABLE must be 'table' or 'schema.table', got: " + table)
		}
		ok("PROBE_TABLE=" + table)
	}

	ok("preflight passed")
}
