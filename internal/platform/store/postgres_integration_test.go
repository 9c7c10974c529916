//go:build integration_pg

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func openPG(t *testing.T) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env:          map[string]string{"POSTGRES_PASSWORD": "postgres"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	url := fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())

	s, err := Open(ctx, Config{AppName: "agenda-store-test", PG: PGConfig{Enabled: true, URL: url, MaxConns: 2}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestPostgres_TxAndRollback(t *testing.T) {
	s := openPG(t)
	ctx := context.Background()

	if _, err := s.PG.Exec(ctx, `CREATE TABLE notes (body text NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO notes VALUES ('dropped')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Tx = %v", err)
	}

	err = RunLocked(ctx, s.PG, "notes", func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO notes VALUES ('kept')`)
		return err
	})
	if err != nil {
		t.Fatalf("RunLocked: %v", err)
	}

	rows, err := s.PG.Query(ctx, `SELECT body FROM notes`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()
	var got []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, b)
	}
	if len(got) != 1 || got[0] != "kept" {
		t.Fatalf("rows = %v", got)
	}

	var app string
	if err := s.PG.QueryRow(ctx, `SELECT current_setting('application_name')`).Scan(&app); err != nil || app != "agenda-store-test" {
		t.Fatalf("application_name = %q, %v", app, err)
	}
}
