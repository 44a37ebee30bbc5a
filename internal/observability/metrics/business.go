package metrics

import "time"

// RecordFeedFetch records the result and duration of one upstream feed fetch.
func RecordFeedFetch(success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	FeedFetchesTotal.WithLabelValues(result).Inc()
	FeedFetchDuration.Observe(duration.Seconds())
}

// RecordFeedCacheHit records serving a batch from the in-memory cache.
func RecordFeedCacheHit() {
	FeedCacheTotal.WithLabelValues("hit").Inc()
}

// RecordFeedCacheMiss records a cache lookup that required a fetch.
func RecordFeedCacheMiss() {
	FeedCacheTotal.WithLabelValues("miss").Inc()
}

// RecordMixedBatch records the size of an assembled mixed batch.
func RecordMixedBatch(articleCount int) {
	MixedBatchArticles.Observe(float64(articleCount))
}

// RecordContentFetchSuccess records a successful content fetch with its
// duration and the size of the fetched text.
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordLibraryOperation records a library mutation, e.g. ("saved", "add").
func RecordLibraryOperation(collection, operation string) {
	LibraryOperationsTotal.WithLabelValues(collection, operation).Inc()
}
