// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db archives emitted Perfherder artifacts in a SQL database
// and answers history queries over them.
package db

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
	"golang.org/x/perfherder/perfherder"
)

// DB is a high-level interface to an artifact archive. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertUpload  *sql.Stmt
	insertSuite   *sql.Stmt
	insertSubtest *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	RunID VARCHAR(64) NOT NULL,
	Created BIGINT NOT NULL,
	Application VARCHAR(64) NOT NULL,
	Version VARCHAR(64),
	Artifact BLOB
);
CREATE TABLE IF NOT EXISTS Suites (
	UploadID BIGINT UNSIGNED,
	SuiteID BIGINT UNSIGNED,
	Name VARCHAR(255),
	Value DOUBLE,
	Unit VARCHAR(32),
	ExtraOptions VARCHAR(1024),
	PRIMARY KEY (UploadID, SuiteID),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Subtests (
	UploadID BIGINT UNSIGNED,
	SuiteID BIGINT UNSIGNED,
	SubtestID BIGINT UNSIGNED,
	Name VARCHAR(255),
	Value DOUBLE,
	Unit VARCHAR(32),
	ShouldAlert BOOLEAN,
	Replicates BLOB,
{{if not .sqlite3}}
	Index (Name(100)),
{{end}}
	PRIMARY KEY (UploadID, SuiteID, SubtestID),
	FOREIGN KEY (UploadID, SuiteID) REFERENCES Suites(UploadID, SuiteID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS SubtestsName ON Subtests(Name);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return errors.Wrap(err, "create table")
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertUpload, err = db.sql.Prepare("INSERT INTO Uploads(RunID, Created, Application, Version, Artifact) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertSuite, err = db.sql.Prepare("INSERT INTO Suites(UploadID, SuiteID, Name, Value, Unit, ExtraOptions) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertSubtest, err = db.sql.Prepare("INSERT INTO Subtests(UploadID, SuiteID, SubtestID, Name, Value, Unit, ShouldAlert, Replicates) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// Store archives artifact a produced by run. It implements
// perfherder.Archive.
func (db *DB) Store(run string, a *perfherder.Artifact) error {
	return db.StoreContext(context.Background(), run, a)
}

// StoreContext archives artifact a produced by run in a single
// transaction.
func (db *DB) StoreContext(ctx context.Context, run string, a *perfherder.Artifact) (err error) {
	content, err := json.Marshal(a)
	if err != nil {
		return errors.WithStack(err)
	}
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertUpload).ExecContext(ctx, run, now().Unix(), a.Application.Name, a.Application.Version, content)
	if err != nil {
		return errors.Wrap(err, "insert upload")
	}
	uploadID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, s := range a.Suites {
		if _, err = tx.StmtContext(ctx, db.insertSuite).ExecContext(ctx, uploadID, i, s.Name, s.Value, s.Unit, strings.Join(s.ExtraOptions, ",")); err != nil {
			return errors.Wrapf(err, "insert suite %s", s.Name)
		}
		for j, st := range s.Subtests {
			reps, err := json.Marshal(st.Replicates)
			if err != nil {
				return errors.WithStack(err)
			}
			if _, err = tx.StmtContext(ctx, db.insertSubtest).ExecContext(ctx, uploadID, i, j, st.Name, st.Value, st.Unit, st.ShouldAlert, reps); err != nil {
				return errors.Wrapf(err, "insert subtest %s", st.Name)
			}
		}
	}
	return nil
}

// CountUploads returns the number of archived artifacts.
func (db *DB) CountUploads() (int, error) {
	var uploads int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&uploads)
	return uploads, err
}

// A Point is one archived value of a subtest.
type Point struct {
	RunID      string
	Created    time.Time
	Suite      string
	Subtest    string
	Value      float64
	Unit       string
	Replicates []float64
}

// likeEscaper escapes the LIKE wildcards of a literal substring.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// History returns the archived values of every subtest whose name
// contains substr, in archive order. Like metric specs, the match is
// case-sensitive.
func (db *DB) History(ctx context.Context, substr string) ([]Point, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT u.RunID, u.Created, s.Name, t.Name, t.Value, t.Unit, t.Replicates
FROM Subtests t
JOIN Suites s ON s.UploadID = t.UploadID AND s.SuiteID = t.SuiteID
JOIN Uploads u ON u.UploadID = t.UploadID
WHERE t.Name LIKE ? ESCAPE '!'
ORDER BY t.UploadID, t.SuiteID, t.SubtestID`, "%"+likeEscaper.Replace(substr)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var (
			p       Point
			created int64
			reps    []byte
		)
		if err := rows.Scan(&p.RunID, &created, &p.Suite, &p.Subtest, &p.Value, &p.Unit, &reps); err != nil {
			return nil, err
		}
		// LIKE ignores case for ASCII in both engines.
		if !strings.Contains(p.Subtest, substr) {
			continue
		}
		p.Created = time.Unix(created, 0)
		if err := json.Unmarshal(reps, &p.Replicates); err != nil {
			return nil, errors.Wrapf(err, "run %s: bad replicates", p.RunID)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Artifact returns the archived artifact of run.
func (db *DB) Artifact(ctx context.Context, run string) (*perfherder.Artifact, error) {
	var content []byte
	err := db.sql.QueryRowContext(ctx, "SELECT Artifact FROM Uploads WHERE RunID = ?", run).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, errors.Errorf("no artifact for run %s", run)
	} else if err != nil {
		return nil, err
	}
	a := new(perfherder.Artifact)
	if err := json.Unmarshal(content, a); err != nil {
		return nil, errors.Wrapf(err, "run %s", run)
	}
	return a, nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertUpload, db.insertSuite, db.insertSubtest} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
