// internal/dataset/postgres_test.go
package dataset

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-recommender/internal/common/logger"
)

var customerColumns = []string{
	"customer_id", "name", "age", "current_plan",
	"monthly_usage_gb", "monthly_calls_min", "monthly_sms",
	"data_limit_gb", "call_limit_min", "sms_limit", "monthly_bill",
}

func TestPostgresSource_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(customerColumns).
		AddRow("C001", "Alice", "34", "Standard", 8.5, 120.0, 40.0, 10.0, 200.0, 100.0, 29.99).
		AddRow("C002", nil, nil, "Basic", 2.1, 45.0, 10.0, 5.0, 100.0, 50.0, 14.99)
	mock.ExpectQuery("SELECT customer_id, name, age, current_plan").
		WillReturnRows(rows)

	source := NewPostgresSource(db, "customers", logger.NewTestLogger(t))
	customers, _, err := source.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "C001", customers[0].CustomerID)
	assert.Equal(t, "Alice", customers[0].Name)
	assert.Equal(t, 8.5, customers[0].MonthlyUsageGB)

	// NULL name/age columns come back as empty passthrough strings.
	assert.Empty(t, customers[1].Name)
	assert.Empty(t, customers[1].Age)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT customer_id").
		WillReturnError(assert.AnError)

	source := NewPostgresSource(db, "customers", logger.NewTestLogger(t))
	_, _, err = source.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_LOAD_FAILED")
}

func TestPostgresSource_EmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT customer_id").
		WillReturnRows(sqlmock.NewRows(customerColumns))

	source := NewPostgresSource(db, "customers", logger.NewTestLogger(t))
	customers, _, err := source.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, customers)
}
