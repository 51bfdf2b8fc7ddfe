package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/pricing"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store, err := NewSQLStore(db)
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	return store, mock
}

func TestSQLStorePut(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Unix(1700000000, 0).UTC()

	sess := &Session{
		ID:         "s1",
		CatalogID:  "bike",
		Status:     StatusActive,
		Selections: catalog.SelectionState{"frame": {"steel"}},
		Price:      &pricing.Breakdown{BasePrice: 500, Subtotal: 500, TaxAmount: 100, Total: 600, Currency: "EUR", Items: []pricing.Item{}},
		Valid:      true,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(
			"s1", "bike", "ACTIVE",
			`{"frame":["steel"]}`,
			sqlmock.AnyArg(), 1,
			now.Unix(), now.Unix(), now.Add(time.Hour).Unix(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSQLStoreGet(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Unix(1700000000, 0).UTC()

	columns := []string{"id", "catalog_id", "status", "selections", "price", "valid", "created_at", "updated_at", "expires_at"}
	mock.ExpectQuery("SELECT (.+) FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"s1", "bike", "SAVED",
			`{"frame":["carbon"]}`,
			`{"basePrice":500,"optionsTotal":400,"subtotal":900,"taxAmount":180,"total":1080,"currency":"EUR","breakdown":[]}`,
			1, now.Unix(), now.Unix(), now.Add(time.Hour).Unix(),
		))

	sess, err := store.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.Status != StatusSaved || !sess.Valid {
		t.Errorf("session = %+v", sess)
	}
	if got := sess.Selections.First("frame"); got != "carbon" {
		t.Errorf("frame = %q, want carbon", got)
	}
	if sess.Price == nil || sess.Price.Total != 1080 {
		t.Errorf("price = %+v", sess.Price)
	}
	if !sess.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", sess.CreatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSQLStoreGetNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM sessions WHERE id").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLStoreGetNullPrice(t *testing.T) {
	store, mock := newMockStore(t)
	columns := []string{"id", "catalog_id", "status", "selections", "price", "valid", "created_at", "updated_at", "expires_at"}
	mock.ExpectQuery("SELECT (.+) FROM sessions WHERE id").
		WithArgs("s2").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"s2", "bike", "ACTIVE", `{}`, nil, 0, 0, 0, 0,
		))

	sess, err := store.Get(context.Background(), "s2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.Price != nil {
		t.Errorf("Price = %+v, want nil", sess.Price)
	}
}

func TestSQLStoreDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectExec("DELETE FROM sessions WHERE id").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLStoreExpireBefore(t *testing.T) {
	store, mock := newMockStore(t)
	deadline := time.Unix(1700000000, 0).UTC()

	mock.ExpectExec("UPDATE sessions SET status").
		WithArgs("EXPIRED", deadline.Unix(), "ACTIVE", "SAVED", deadline.Unix()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.ExpireBefore(context.Background(), deadline)
	if err != nil {
		t.Fatalf("ExpireBefore: %v", err)
	}
	if n != 3 {
		t.Errorf("expired %d, want 3", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
