package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"jobboard/internal/search"
)

const (
	jobsSearchPrefix = "jobs:search:"
	jobsLockPrefix   = "jobs:lock:"

	analyticsReportPrefix = "analytics:report:"
	analyticsLockPrefix   = "analytics:lock:"
)

type jobSearchCacheKeyInput struct {
	Keyword  string `json:"keyword"`
	Location string `json:"location"`
	Status   string `json:"status"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func JobsSearchCacheKey(params JobListParams) string {
	in := jobSearchCacheKeyInput{
		Keyword:  search.NormalizeQuery(params.Keyword),
		Location: normalizeSearchValue(params.Location),
		Status:   normalizeSearchValue(params.Status),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobsSearchPrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	return jobsLockPrefix + strings.TrimPrefix(searchKey, jobsSearchPrefix)
}

func AnalyticsReportCacheKey(windowDays, year int) string {
	return analyticsReportPrefix + strconv.Itoa(windowDays) + ":" + strconv.Itoa(year)
}

func AnalyticsLockKey(reportKey string) string {
	return analyticsLockPrefix + strings.TrimPrefix(reportKey, analyticsReportPrefix)
}
