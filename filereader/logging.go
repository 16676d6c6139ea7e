package filereader

import (
	"github.com/streamingfast/logging"
)

var zlog, _ = logging.PackageLogger("filereader", "github.com/graphprotocol/ets-indexer/filereader")
