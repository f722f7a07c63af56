package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

var RateLimiterCache = cache.New(10*time.Minute, 20*time.Minute)
var YahooHistoryCache = cache.New(15*time.Minute, 30*time.Minute)

const ReportCacheTTL = 10 * time.Minute

// NewReportCache holds computed return tables until the next data change or
// ReportCacheTTL, whichever comes first. Other instances only see an upload
// once their copy expires.
func NewReportCache() *cache.Cache {
	return NewReportCacheWithTTL(ReportCacheTTL)
}

func NewReportCacheWithTTL(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, 2*ttl)
}
