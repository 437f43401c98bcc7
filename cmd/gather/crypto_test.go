package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cryptoSourcesYAML = `crypto:
  symbols:
    - id: bitcoin
      label: BTC
      low: 110000
      high: 113000
`

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".gather")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestCryptoCmd runs a full crypto collection against a stub API and
// checks the artifacts, the history database, and the console summary.
func TestCryptoCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Errorf("ids = %q, want bitcoin", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":114000,"last_updated_at":1756100000}}`))
	}))
	defer srv.Close()
	t.Setenv("GATHER_PRICE_API_URL", srv.URL)

	outDir := t.TempDir()
	dbDir := t.TempDir()
	sources := writeSourcesFile(t, cryptoSourcesYAML)

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{
		"crypto",
		"--samples", "1",
		"--config", sources,
		"--output-dir", outDir,
		"--db-dir", dbDir,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, name := range []string{
		"crypto_prices.csv",
		"crypto_prices_detailed.csv",
		"crypto_alerts.csv",
		"crypto_prices_raw.json",
		"crypto_report.md",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dbDir, "gather.db")); err != nil {
		t.Errorf("history database missing: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "GATHER CRYPTO RUN") {
		t.Error("console summary missing")
	}
	if !strings.Contains(out, "HIGH_ALERT") {
		t.Errorf("alert missing from console output: %s", out)
	}
}

// TestCryptoCmdNoDB verifies --no-db leaves the database directory empty.
func TestCryptoCmdNoDB(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":50000}}`))
	}))
	defer srv.Close()
	t.Setenv("GATHER_PRICE_API_URL", srv.URL)

	dbDir := t.TempDir()
	sources := writeSourcesFile(t, cryptoSourcesYAML)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"crypto",
		"--samples", "1",
		"--config", sources,
		"--output-dir", t.TempDir(),
		"--db-dir", dbDir,
		"--no-db",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dbDir, "gather.db")); !os.IsNotExist(err) {
		t.Errorf("database created despite --no-db: %v", err)
	}
}

// TestCryptoCmdAPIFailure verifies a dead API fails the command instead
// of writing empty artifacts.
func TestCryptoCmdAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	t.Setenv("GATHER_PRICE_API_URL", srv.URL)

	outDir := t.TempDir()
	sources := writeSourcesFile(t, cryptoSourcesYAML)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"crypto",
		"--samples", "1",
		"--config", sources,
		"--output-dir", outDir,
		"--no-db",
	})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Execute() expected error for failing API")
	}
	if !strings.Contains(err.Error(), "collected nothing") {
		t.Errorf("error = %v, want collected-nothing failure", err)
	}

	if _, statErr := os.Stat(filepath.Join(outDir, "crypto_prices.csv")); !os.IsNotExist(statErr) {
		t.Error("artifacts written despite empty run")
	}
}

// TestCryptoCmdMissingSourcesFile verifies an explicit bad path errors.
func TestCryptoCmdMissingSourcesFile(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"crypto",
		"--config", filepath.Join(t.TempDir(), "does-not-exist"),
	})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "sources file not found") {
		t.Errorf("error = %v, want sources-file-not-found", err)
	}
}
