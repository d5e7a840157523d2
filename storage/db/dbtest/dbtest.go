// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens archive databases for tests.
package dbtest

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"golang.org/x/perfherder/storage/db"
	_ "golang.org/x/perfherder/storage/db/sqlite3"
)

// MySQLEnv names the environment variable that supplies the default
// for the -mysql flag.
const MySQLEnv = "PERFHERDER_TEST_MYSQL"

var mysqlDSN = flag.String("mysql", os.Getenv(MySQLEnv), "run tests against the MySQL server at this DSN (e.g. root:@tcp(localhost:3306)/) instead of in-memory SQLite")

// mysqlDatabase creates a database named for the test on the server
// at server and returns a DSN that selects it. The database is dropped
// when the test finishes.
func mysqlDatabase(t *testing.T, server string) string {
	cfg, err := mysql.ParseDSN(server)
	if err != nil {
		t.Fatalf("bad -mysql DSN: %v", err)
	}
	name := "perfherder_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	admin, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := admin.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		admin.Close()
		t.Fatal(err)
	}
	t.Logf("Using database %q", name)
	t.Cleanup(func() {
		if _, err := admin.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		admin.Close()
	})

	cfg.DBName = name
	return cfg.FormatDSN()
}

// NewDB opens an empty archive for t: in-memory SQLite by default,
// or a fresh MySQL database if -mysql (or $PERFHERDER_TEST_MYSQL) is
// set. The archive is closed when the test finishes.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *mysqlDSN != "" {
		driverName, dataSourceName = "mysql", mysqlDatabase(t, *mysqlDSN)
	}
	d, err := db.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// Registered after the drop, so it runs first.
	t.Cleanup(func() { d.Close() })

	uploads, err := d.CountUploads()
	if err != nil {
		t.Fatal(err)
	}
	if uploads != 0 {
		t.Fatalf("found %d row(s) in Uploads, want 0", uploads)
	}
	return d
}
