package database_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/promptbench/pkg/database"
)

func TestFinalizeDefaults(t *testing.T) {
	c := database.Config{}
	if err := c.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	want := "host=localhost port=5432 dbname=promptbench user=promptbench password= sslmode=disable"
	if got := c.Dsn(); got != want {
		t.Errorf("Dsn = %q, want %q", got, want)
	}
	if c.ConnTimeoutDuration() != 5*time.Second || c.ConnMaxLifetimeDuration() != 15*time.Minute {
		t.Errorf("durations = %v %v", c.ConnTimeoutDuration(), c.ConnMaxLifetimeDuration())
	}
}

func TestFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "6543")
	t.Setenv("TEST_DB_URL", "")

	c := database.Config{}
	err := c.Finalize(&database.Env{Host: "TEST_DB_HOST", Port: "TEST_DB_PORT", URL: "TEST_DB_URL"})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if c.Host != "db.internal" || c.Port != 6543 {
		t.Errorf("config = %+v", c)
	}
}

func TestURLWins(t *testing.T) {
	c := database.Config{URL: "postgres://a:b@h/db", Host: "ignored"}
	if err := c.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if c.Dsn() != "postgres://a:b@h/db" {
		t.Errorf("Dsn = %s", c.Dsn())
	}
}

func TestMerge(t *testing.T) {
	c := database.Config{Host: "localhost", Port: 5432, Name: "bench"}
	c.Merge(&database.Config{Host: "prod", MaxOpenConns: 50})

	if c.Host != "prod" || c.Port != 5432 || c.Name != "bench" || c.MaxOpenConns != 50 {
		t.Errorf("merged = %+v", c)
	}
}

func TestValidation(t *testing.T) {
	c := database.Config{ConnTimeout: "fast"}
	if err := c.Finalize(nil); err == nil {
		t.Error("bad conn_timeout should fail")
	}
}
