package store

import (
	"github.com/streamingfast/logging"
)

var zlog, _ = logging.PackageLogger("store", "github.com/graphprotocol/ets-indexer/store")
