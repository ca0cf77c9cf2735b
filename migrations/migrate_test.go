// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the DB on its own

	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

// The idempotency token is unique per store, not globally: two stores may
// legitimately produce the same client_ref. The schema must scope every
// client_ref uniqueness constraint by store_id.
func TestClientRefUniquenessIsStoreScoped(t *testing.T) {
	entries, err := embedMigrations.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	for _, entry := range entries {
		raw, readErr := embedMigrations.ReadFile(entry.Name())
		if readErr != nil {
			t.Fatalf("failed to read %s: %v", entry.Name(), readErr)
		}

		for _, line := range strings.Split(string(raw), "\n") {
			if strings.Contains(line, "client_ref") && strings.Contains(line, "UNIQUE") {
				if !strings.Contains(line, "store_id") {
					t.Errorf("%s: client_ref uniqueness is not scoped by store_id: %s",
						entry.Name(), strings.TrimSpace(line))
				}
			}
		}
	}
}
