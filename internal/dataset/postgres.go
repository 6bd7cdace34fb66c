// internal/dataset/postgres.go
package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/models"
)

// PostgresSource loads customer records from a database table with the same
// column contract as the CSV layout.
type PostgresSource struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, table string, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		table:  table,
		logger: log.WithFields(map[string]interface{}{"component": "postgres-source", "table": table}),
	}
}

func (s *PostgresSource) Name() string { return "postgres" }

// Load reads the whole table ordered by customer id so repeated runs see the
// dataset in a stable order. Type coercion happens in the driver, so there
// are never soft row errors from this source.
func (s *PostgresSource) Load(ctx context.Context) ([]models.CustomerRecord, []RowError, error) {
	query := fmt.Sprintf(`SELECT customer_id, name, age, current_plan,
		monthly_usage_gb, monthly_calls_min, monthly_sms,
		data_limit_gb, call_limit_min, sms_limit, monthly_bill
		FROM %s ORDER BY customer_id`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, errors.NewDatasetLoadFailedError(s.table, err)
	}
	defer rows.Close()

	var customers []models.CustomerRecord
	for rows.Next() {
		var (
			rec  models.CustomerRecord
			name sql.NullString
			age  sql.NullString
		)
		err := rows.Scan(
			&rec.CustomerID, &name, &age, &rec.CurrentPlan,
			&rec.MonthlyUsageGB, &rec.MonthlyCallsMin, &rec.MonthlySMS,
			&rec.DataLimitGB, &rec.CallLimitMin, &rec.SMSLimit, &rec.MonthlyBill,
		)
		if err != nil {
			return nil, nil, errors.NewDatasetLoadFailedError(s.table, err)
		}
		rec.Name = name.String
		rec.Age = age.String
		customers = append(customers, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.NewDatasetLoadFailedError(s.table, err)
	}

	s.logger.Info("dataset loaded", map[string]interface{}{"rows": len(customers)})
	return customers, nil, nil
}
