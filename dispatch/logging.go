package dispatch

import (
	"github.com/streamingfast/logging"
)

var zlog, tracer = logging.PackageLogger("dispatch", "github.com/graphprotocol/ets-indexer/dispatch")
