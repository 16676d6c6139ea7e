package codec

import (
	"github.com/streamingfast/logging"
)

var zlog, tracer = logging.PackageLogger("codec", "github.com/graphprotocol/ets-indexer/codec")
