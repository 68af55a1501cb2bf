package database

import (
	"strings"
	"testing"

	"watchlist-foodlens-service/internal/config"
)

func TestNewPostgresUnreachable(t *testing.T) {
	cfg := config.DBConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "postgres",
		Password: "postgres",
		DBName:   "watchlist",
		SSLMode:  "disable",
	}

	db, err := NewPostgres(cfg)
	if err == nil {
		db.Close()
		t.Fatal("expected an error for an unreachable server")
	}
	if db != nil {
		t.Error("a handle was returned alongside the error")
	}
	if !strings.Contains(err.Error(), "failed to ping database") {
		t.Errorf("err = %v", err)
	}
}
