package indexer

import (
	"github.com/streamingfast/dmetrics"
)

var metrics = dmetrics.NewSet()

var (
	headBlockNumber = metrics.NewHeadBlockNumber("etsindexer")
	headTimeDrift   = metrics.NewHeadTimeDrift("etsindexer")
	blocksProcessed = metrics.NewCounter("etsindexer_blocks_processed", "Number of blocks read from the event source")
	eventsApplied   = metrics.NewCounter("etsindexer_events_applied", "Number of events applied to the store")
)

// RegisterMetrics registers the indexer metrics with the default prometheus registry.
func RegisterMetrics() {
	dmetrics.Register(metrics)
}
