package noderunner

import (
	"github.com/streamingfast/logging"
)

var zlog, _ = logging.PackageLogger("noderunner", "github.com/graphprotocol/ets-indexer/noderunner")
