package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/draftpicks/internal/draft"
)

func picks() []draft.Record {
	return []draft.Record{
		{Season: "1983", Pick: "14", Player: "Jim Kelly", Position: "QB", College: "Miami (FL)", Notes: "Hall of Fame"},
		{Season: "1985", Pick: "1", Player: "Bruce Smith", Position: "DE", College: "Virginia Tech"},
	}
}

func TestReplaceCopiesRowsInTransaction(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock, "")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + draft.DefaultTable).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("DELETE FROM " + draft.DefaultTable).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))
	mock.ExpectCopyFrom(pgx.Identifier{draft.DefaultTable}, draft.Columns[:]).
		WillReturnResult(2)
	mock.ExpectCommit()

	n, err := store.Replace(context.Background(), picks())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceEmptySkipsCopy(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock, "picks")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS picks").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("DELETE FROM picks").WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	n, err := store.Replace(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRollsBackOnCopyError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock, "picks")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS picks").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("DELETE FROM picks").WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCopyFrom(pgx.Identifier{"picks"}, draft.Columns[:]).WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err = store.Replace(context.Background(), picks())
	require.ErrorContains(t, err, "constraint violation")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock, "picks")
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS picks").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	rows := pgxmock.NewRows(draft.Columns[:]).
		AddRow(strPtr("1983"), strPtr("14"), strPtr("Jim Kelly"), strPtr("QB"), strPtr("Miami (FL)"), strPtr("Hall of Fame")).
		AddRow(strPtr("1985"), strPtr("1"), strPtr("Bruce Smith"), strPtr("DE"), strPtr("Virginia Tech"), (*string)(nil))
	mock.ExpectQuery("SELECT season, pick_overall").WillReturnRows(rows)

	got, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, picks(), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewWithPoolValidation(t *testing.T) {
	t.Parallel()

	_, err := NewWithPool(nil, "")
	require.Error(t, err)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	_, err = NewWithPool(mock, "drop table;")
	require.ErrorIs(t, err, draft.ErrInvalidTable)
}

func TestOpenRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{})
	require.Error(t, err)
}

func strPtr(s string) *string { return &s }
