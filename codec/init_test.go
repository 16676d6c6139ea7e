package codec

import (
	"github.com/streamingfast/logging"
)

func init() {
	logging.InstantiateLoggers()
}
