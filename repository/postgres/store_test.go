package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"salonhub-backend/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return New(gdb), mock
}

var itemColumns = []string{"id", "item_name", "category", "quantity", "price", "supplier_name", "supplier_email", "created_at", "updated_at"}

func itemRow(id uuid.UUID, qty int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(itemColumns).
		AddRow(id.String(), "Argan Shampoo", "Hair care", qty, 12.5, "Beauty Supply Co", "orders@beautysupply.com", now, now)
}

func TestRetrieveStockDecrements(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "inventory_items"`).
		WillReturnRows(itemRow(id, 7))

	item, err := store.RetrieveStock(context.Background(), id, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
	assert.Equal(t, id, item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetrieveStockInsufficient(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "inventory_items"`).
		WillReturnRows(itemRow(id, 2))

	_, err := store.RetrieveStock(context.Background(), id, 5)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetrieveStockUnknownItem(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "inventory_items"`).
		WillReturnRows(sqlmock.NewRows(itemColumns))

	_, err := store.RetrieveStock(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := store.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "packages"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeletePackage(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountServices(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "services"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := store.CountServices(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), repository.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), repository.ErrDuplicate)
	assert.ErrorIs(t, translate(sql.ErrConnDone), sql.ErrConnDone)
}

func TestSearchItemsEscapesWildcards(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	want := `%50\%\_off\\%`
	mock.ExpectQuery(regexp.QuoteMeta(`item_name ILIKE $1 ESCAPE '\' OR category ILIKE $2 ESCAPE '\'`)).
		WithArgs(want, want, want).
		WillReturnRows(itemRow(id, 4))

	items, err := store.SearchItems(context.Background(), `50%_off\`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
