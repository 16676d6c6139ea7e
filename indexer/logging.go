package indexer

import (
	"github.com/streamingfast/logging"
)

var zlog, tracer = logging.PackageLogger("indexer", "github.com/graphprotocol/ets-indexer/indexer")
