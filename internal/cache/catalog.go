// internal/cache/catalog.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/models"
)

// CatalogCache memoizes derived plan catalogs in Redis, keyed by a
// fingerprint of the dataset they were built from. Cache trouble is never
// fatal: a failed Get reads as a miss and a failed Put is logged and
// dropped, so the pipeline output is identical with or without Redis.
type CatalogCache struct {
	client   *redis.Client
	ttl      time.Duration
	recorder *errors.Recorder
	logger   logger.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, log logger.Logger) *CatalogCache {
	return &CatalogCache{
		client:   client,
		ttl:      ttl,
		recorder: errors.NewRecorder(log),
		logger:   log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

// Fingerprint hashes the fields of every customer record that influence the
// derived catalog. Two datasets with the same fingerprint yield the same
// catalog.
func Fingerprint(customers []models.CustomerRecord) string {
	h := sha256.New()
	for _, c := range customers {
		fmt.Fprintf(h, "%s|%s|%s|%s|%s\n",
			c.CurrentPlan,
			strconv.FormatFloat(c.DataLimitGB, 'f', -1, 64),
			strconv.FormatFloat(c.CallLimitMin, 'f', -1, 64),
			strconv.FormatFloat(c.SMSLimit, 'f', -1, 64),
			strconv.FormatFloat(c.MonthlyBill, 'f', -1, 64),
		)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func cacheKey(fingerprint string) string {
	return "catalog:" + fingerprint
}

// Get returns the cached catalog for fingerprint, or (nil, false) on a miss.
func (c *CatalogCache) Get(ctx context.Context, fingerprint string) ([]models.PlanRecord, bool) {
	payload, err := c.client.Get(ctx, cacheKey(fingerprint)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.recorder.Record("catalog-cache", errors.NewCacheUnavailableError(err))
		return nil, false
	}

	var plans []models.PlanRecord
	if err := json.Unmarshal([]byte(payload), &plans); err != nil {
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
		return nil, false
	}

	c.logger.Debug("catalog cache hit", map[string]interface{}{
		"fingerprint": fingerprint,
		"plans":       len(plans),
	})
	return plans, true
}

// Put stores the catalog under the dataset fingerprint with the configured TTL.
func (c *CatalogCache) Put(ctx context.Context, fingerprint string, plans []models.PlanRecord) {
	payload, err := json.Marshal(plans)
	if err != nil {
		c.logger.Warn("failed to encode catalog for caching", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, cacheKey(fingerprint), payload, c.ttl).Err(); err != nil {
		c.recorder.Record("catalog-cache", errors.NewCacheUnavailableError(err))
		return
	}

	c.logger.Debug("catalog cached", map[string]interface{}{
		"fingerprint": fingerprint,
		"plans":       len(plans),
		"ttl":         c.ttl.String(),
	})
}
