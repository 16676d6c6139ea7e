package chain

import (
	"github.com/streamingfast/logging"
)

var zlog, tracer = logging.PackageLogger("chain", "github.com/graphprotocol/ets-indexer/chain")
