package aggregate

import (
	"github.com/streamingfast/logging"
)

var zlog, tracer = logging.PackageLogger("aggregate", "github.com/graphprotocol/ets-indexer/aggregate")
