package store

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/martatracker-data/internal/alerts"
	"github.com/martatracker-data/internal/common/db"
	"github.com/martatracker-data/internal/common/logger"
)

var testLogger = logger.New(io.Discard)

func newMockStore(t *testing.T) (*AlertStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewAlertStore(db.NewFromConn(conn, testLogger)), mock
}

func TestAlertStorePutUpserts(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	rec := alerts.Record{
		Route:     "12",
		Text:      "bus delayed",
		CreatedAt: created,
		ExpiresAt: created.Add(24 * time.Hour),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO alerts.active_alerts")).
		WithArgs("12", "bus delayed", created.Unix(), created.Add(24*time.Hour).Unix()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Put(context.Background(), rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAlertStoreQueryByRouteOrdersAndFiltersExpiry(t *testing.T) {
	store, mock := newMockStore(t)
	t2 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 := t2.Add(-time.Hour)

	rows := sqlmock.NewRows([]string{"route", "alert_text", "created_at", "expires_at"}).
		AddRow("12", "second", t2.Unix(), t2.Add(24*time.Hour).Unix()).
		AddRow("12", "first", t1.Unix(), t1.Add(24*time.Hour).Unix())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE route = $1 AND expires_at > $2")).
		WithArgs("12", sqlmock.AnyArg()).
		WillReturnRows(rows)

	records, err := store.QueryByRoute(context.Background(), "12")
	if err != nil {
		t.Fatalf("QueryByRoute() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Text != "second" || records[1].Text != "first" {
		t.Errorf("records out of order: %+v", records)
	}
	if !records[0].CreatedAt.Equal(t2) {
		t.Errorf("created_at = %v, want %v", records[0].CreatedAt, t2)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAlertStoreScanAll(t *testing.T) {
	store, mock := newMockStore(t)
	t1 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"route", "alert_text", "created_at", "expires_at"}).
		AddRow("12", "bus delayed", t1.Unix(), t1.Add(24*time.Hour).Unix()).
		AddRow("40", "stop closed", t1.Unix(), t1.Add(24*time.Hour).Unix())

	mock.ExpectQuery(regexp.QuoteMeta("FROM alerts.active_alerts")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	records, err := store.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
