package experiences

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

var cols = []string{"id", "destination", "region", "title", "description", "highlights", "image_url", "author_id", "created_at", "updated_at"}

func TestList_FilterAndPage(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT COUNT\(\*\) FROM experiences WHERE region = \$1 AND \(destination ILIKE \$2 OR title ILIKE \$2 OR description ILIKE \$2\)$`).
		WithArgs("South", "%backwater%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(`FROM experiences WHERE region = \$1 .* ORDER BY created_at DESC, id DESC LIMIT \$3 OFFSET \$4$`).
		WithArgs("South", "%backwater%", 2, 2).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("e-1", "Kerala", "South", "Backwaters", "Houseboats", []byte(`["boats","food"]`), nil, "admin-001", now, now))

	res, err := repo.List(context.Background(), store.Filter{Facet: "South", Search: "backwater", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, []string{"boats", "food"}, res.Items[0].Highlights)
	assert.Nil(t, res.Items[0].ImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AllFacetAndEmpty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM experiences$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM experiences ORDER BY created_at DESC, id DESC LIMIT \$1 OFFSET \$2$`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(cols))

	res, err := repo.List(context.Background(), store.Filter{Facet: store.FacetAll})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestList_CountError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("conn reset"))

	_, err := repo.List(context.Background(), store.Filter{})
	assert.ErrorContains(t, err, "db error")
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM experiences WHERE id = \$1`).
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("e-1", "Goa", "West", "Beaches", "Sun", []byte(`[]`), "https://img/x.jpg", "u-1", now, now))

	got, err := repo.Get(context.Background(), "e-1")
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://img/x.jpg", *got.ImageURL)
	assert.Equal(t, []string{}, got.Highlights)

	mock.ExpectQuery(`FROM experiences WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+experiences\s*\(id,.*updated_at\)\s*VALUES\s*\(\$1,.*\$10\)\s*$`).
		WithArgs("e-1", "Kerala", "South", "T", "D", []byte(`["a"]`), sql.NullString{}, "u-1", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := &models.Experience{ID: "e-1", Destination: "Kerala", Region: "South", Title: "T", Description: "D",
		Highlights: []string{"a"}, AuthorID: "u-1", CreatedAt: now, UpdatedAt: now}
	_, err := repo.Create(context.Background(), e)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+experiences\s+SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, err := repo.Update(context.Background(), &models.Experience{ID: "missing"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectExec(`^DELETE FROM experiences WHERE id = \$1$`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), common.ErrorNotFound)

	mock.ExpectExec(`^DELETE FROM experiences WHERE id = \$1$`).
		WithArgs("e-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), "e-1"))
}
