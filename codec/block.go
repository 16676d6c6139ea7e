package codec

import (
	"github.com/streamingfast/bstream"
)

// Log is one contract event as emitted by the extractor. Params hold the
// event arguments by name, rendered as decimal numbers, hex strings or booleans.
type Log struct {
	Address  string            `json:"address"`
	Event    string            `json:"event"`
	TxHash   string            `json:"txHash"`
	TxIndex  uint64            `json:"txIndex"`
	LogIndex uint64            `json:"logIndex"`
	Params   map[string]string `json:"params"`
}

// Block groups the logs of one block in emission order.
type Block struct {
	Number    uint64
	Hash      string
	Timestamp uint64
	Logs      []*Log
}

func (b *Block) AsRef() bstream.BlockRef {
	return bstream.NewBlockRef(b.Hash, b.Number)
}
