// internal/export/elasticsearch.go
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/models"
)

// ReportIndexer ships finished report rows to an Elasticsearch index via the
// bulk API so downstream dashboards can query them.
type ReportIndexer struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewReportIndexer(es *elasticsearch.Client, index string, log logger.Logger) *ReportIndexer {
	return &ReportIndexer{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "report-indexer", "index": index}),
	}
}

type indexedRow struct {
	models.ReportRow
	RunID string `json:"run_id"`
}

// IndexBatch writes every row of a run as one bulk request. Document ids are
// derived from the run id, customer id and recommended plan so re-running a
// batch overwrites its own documents instead of duplicating them.
func (i *ReportIndexer) IndexBatch(ctx context.Context, runID string, rows []models.ReportRow) error {
	if len(rows) == 0 {
		return nil
	}

	var body bytes.Buffer
	for _, row := range rows {
		docID := fmt.Sprintf("%s:%s:%s", runID, row.CustomerID, row.RecommendedPlanID)
		action := map[string]map[string]string{
			"index": {"_index": i.index, "_id": docID},
		}
		if err := json.NewEncoder(&body).Encode(action); err != nil {
			return errors.NewReportExportFailedError(i.index, err)
		}
		if err := json.NewEncoder(&body).Encode(indexedRow{ReportRow: row, RunID: runID}); err != nil {
			return errors.NewReportExportFailedError(i.index, err)
		}
	}

	res, err := i.es.Bulk(
		bytes.NewReader(body.Bytes()),
		i.es.Bulk.WithContext(ctx),
		i.es.Bulk.WithIndex(i.index),
	)
	if err != nil {
		return errors.NewReportExportFailedError(i.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewReportExportFailedError(i.index, fmt.Errorf("bulk request failed: %s", res.Status()))
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  *struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return errors.NewReportExportFailedError(i.index, err)
	}
	if bulkRes.Errors {
		failed := 0
		for _, item := range bulkRes.Items {
			for _, op := range item {
				if op.Error != nil {
					failed++
				}
			}
		}
		return errors.NewReportExportFailedError(i.index, fmt.Errorf("%d of %d documents rejected", failed, len(rows)))
	}

	i.logger.Info("report indexed", map[string]interface{}{
		"runId": runID,
		"docs":  len(rows),
	})
	return nil
}
