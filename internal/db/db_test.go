package db

import (
	"database/sql"
	"database/sql/driver"
	"os"
	"os/exec"
	"testing"

	"blaemart-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pingableDriver accepts any DSN and answers pings, so the happy path of
// newDatabaseWithDriver can run without a real Postgres.
type pingableDriver struct{}

func (pingableDriver) Open(string) (driver.Conn, error) { return pingableConn{}, nil }

type pingableConn struct{}

func (pingableConn) Prepare(string) (driver.Stmt, error) { return noopStmt{}, nil }
func (pingableConn) Close() error                        { return nil }
func (pingableConn) Begin() (driver.Tx, error)           { return nil, nil }

type noopStmt struct{}

func (noopStmt) Close() error                               { return nil }
func (noopStmt) NumInput() int                              { return 0 }
func (noopStmt) Exec([]driver.Value) (driver.Result, error) { return nil, nil }
func (noopStmt) Query([]driver.Value) (driver.Rows, error)  { return nil, nil }

func init() {
	sql.Register("pingable", pingableDriver{})
}

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBUser:     "blaemart",
		DBPassword: "hunter2",
		DBName:     "blaemart",
		DBPort:     "5433",
	}

	assert.Equal(t,
		"host=db.internal user=blaemart password=hunter2 dbname=blaemart port=5433 sslmode=disable",
		buildDSN(cfg),
	)
}

func TestNewDatabase(t *testing.T) {
	t.Run("Unreachable host fails the ping", func(t *testing.T) {
		cfg := &config.Config{DBHost: "no-such-host", DBPort: "5432"}

		db, err := NewDatabase(cfg)
		require.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to ping DB")
	})

	t.Run("Unregistered driver fails to open", func(t *testing.T) {
		db, err := newDatabaseWithDriver(&config.Config{}, "no-such-driver")
		require.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to connect to DB")
	})

	t.Run("Reachable database connects", func(t *testing.T) {
		db, err := newDatabaseWithDriver(&config.Config{DBHost: "localhost"}, "pingable")
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		stats := db.Stats()
		assert.Equal(t, maxOpenConns, stats.MaxOpenConnections)
	})
}

// InitDB exits the process on failure, so the failure path runs in a
// subprocess and the parent asserts on the exit code.
func TestInitDB_Failure(t *testing.T) {
	if os.Getenv("DB_INIT_CRASHER") == "1" {
		InitDB(&config.Config{DBHost: "no-such-host", DBPort: "5432"})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestInitDB_Failure")
	cmd.Env = append(os.Environ(), "DB_INIT_CRASHER=1")
	err := cmd.Run()

	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want non-zero exit", err)
}
