package osmalt

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFromSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectNodes)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "lat", "lon"}).
			AddRow(int64(0), 63.0, 10.0).
			AddRow(int64(1), 63.1, 10.1).
			AddRow(int64(2), 63.2, 10.2),
	)
	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectEdges)).WillReturnRows(
		sqlmock.NewRows([]string{"src", "dst", "weight", "length_m", "speed_kmh"}).
			AddRow(int64(0), int64(1), int64(7), 120.5, int64(60)).
			AddRow(int64(1), int64(2), int64(3), nil, nil),
	)
	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectPOI)).WillReturnRows(
		sqlmock.NewRows([]string{"node_id", "category", "name"}).
			AddRow(int64(2), int64(CATEGORY_GAS), "Station").
			AddRow(int64(1), int64(CATEGORY_FOOD), nil),
	)

	g, err := ImportFromSQL(context.Background(), db, true, false)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 3, g.NodesNum())
	assert.Equal(t, 2, g.EdgesNum())
	assert.Equal(t, 63.1, g.Node(1).Point.Lat)
	edges := g.Neighbors(0)
	require.Len(t, edges, 1)
	assert.Equal(t, Weight(7), edges[0].Weight)
	assert.Equal(t, 120.5, edges[0].LengthMeters)
	assert.Equal(t, 60, edges[0].SpeedLimit)
	assert.Equal(t, CATEGORY_GAS, g.Node(2).Category)
	assert.Equal(t, "Station", g.Node(2).Name)
	assert.Equal(t, CATEGORY_FOOD, g.Node(1).Category)

	result, err := g.ShortestPath(0, 2)
	require.NoError(t, err)
	assert.Equal(t, Weight(10), result.Distance)
}

func TestImportFromSQLErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectNodes)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "lat", "lon"}).
			AddRow(int64(0), 63.0, 10.0).
			AddRow(int64(2), 63.2, 10.2),
	)
	_, err = ImportFromSQL(context.Background(), db, false, false)
	assert.True(t, errors.Is(err, ErrNonDenseID), "unexpected error: %v", err)

	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectNodes)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "lat", "lon"}).AddRow(int64(0), 63.0, 10.0),
	)
	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectEdges)).WillReturnRows(
		sqlmock.NewRows([]string{"src", "dst", "weight", "length_m", "speed_kmh"}).
			AddRow(int64(0), int64(0), int64(-5), nil, nil),
	)
	_, err = ImportFromSQL(context.Background(), db, false, false)
	assert.True(t, errors.Is(err, ErrNegativeWeight), "unexpected error: %v", err)

	// Identifiers beyond int32 must not wrap around to existing nodes
	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectNodes)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "lat", "lon"}).
			AddRow(int64(0), 63.0, 10.0).
			AddRow(int64(1), 63.1, 10.1),
	)
	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectEdges)).WillReturnRows(
		sqlmock.NewRows([]string{"src", "dst", "weight", "length_m", "speed_kmh"}).
			AddRow(int64(0), int64(1)<<32+1, int64(7), nil, nil),
	)
	_, err = ImportFromSQL(context.Background(), db, false, false)
	assert.True(t, errors.Is(err, ErrNodeOutOfRange), "unexpected error: %v", err)

	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectNodes)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "lat", "lon"}).AddRow(int64(1)<<32, 63.0, 10.0),
	)
	_, err = ImportFromSQL(context.Background(), db, false, false)
	assert.True(t, errors.Is(err, ErrNodeOutOfRange), "unexpected error: %v", err)

	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectNodes)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "lat", "lon"}).AddRow(int64(0), 63.0, 10.0),
	)
	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectEdges)).WillReturnRows(
		sqlmock.NewRows([]string{"src", "dst", "weight", "length_m", "speed_kmh"}),
	)
	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectPOI)).WillReturnRows(
		sqlmock.NewRows([]string{"node_id", "category", "name"}).AddRow(int64(1)<<32, int64(CATEGORY_GAS), "Station"),
	)
	_, err = ImportFromSQL(context.Background(), db, true, false)
	assert.True(t, errors.Is(err, ErrNodeOutOfRange), "unexpected error: %v", err)

	mock.ExpectQuery(regexp.QuoteMeta(sqlSelectNodes)).WillReturnError(errors.New("connection refused"))
	_, err = ImportFromSQL(context.Background(), db, false, false)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenMySQL(t *testing.T) {
	db, err := OpenMySQL("user:password@tcp(127.0.0.1:3306)/roads")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = OpenMySQL("user:password@tcp(127.0.0.1:3306")
	assert.Error(t, err)
}
