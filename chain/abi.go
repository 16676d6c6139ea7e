package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const accessControlsABIJSON = `[
  {"type":"function","name":"relayerContractToName","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"isRelayerAdmin","stateMutability":"view","inputs":[{"name":"_addr","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"isRelayerLocked","stateMutability":"view","inputs":[{"name":"_addr","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"getPlatformAddress","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const relayerABIJSON = `[
  {"type":"function","name":"getOwner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"getCreator","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"isPaused","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]}
]`

const tokenABIJSON = `[
  {"type":"function","name":"getTagById","stateMutability":"view","inputs":[{"name":"_tokenId","type":"uint256"}],"outputs":[
    {"name":"","type":"tuple","components":[
      {"name":"relayer","type":"address"},
      {"name":"creator","type":"address"},
      {"name":"display","type":"string"},
      {"name":"premium","type":"bool"},
      {"name":"reserved","type":"bool"}
    ]}
  ]},
  {"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]}
]`

const etsABIJSON = `[
  {"type":"function","name":"getTaggingRecordFromId","stateMutability":"view","inputs":[{"name":"_id","type":"uint256"}],"outputs":[
    {"name":"tagIds","type":"uint256[]"},
    {"name":"targetId","type":"uint256"},
    {"name":"recordType","type":"string"},
    {"name":"relayer","type":"address"},
    {"name":"tagger","type":"address"}
  ]}
]`

const targetABIJSON = `[
  {"type":"function","name":"getTargetById","stateMutability":"view","inputs":[{"name":"_targetId","type":"uint256"}],"outputs":[
    {"name":"","type":"tuple","components":[
      {"name":"targetURI","type":"string"},
      {"name":"createdBy","type":"address"},
      {"name":"enriched","type":"uint256"},
      {"name":"httpStatus","type":"uint256"},
      {"name":"ipfsHash","type":"string"}
    ]}
  ]}
]`

const auctionHouseABIJSON = `[
  {"type":"function","name":"getAuction","stateMutability":"view","inputs":[{"name":"_auctionId","type":"uint256"}],"outputs":[
    {"name":"","type":"tuple","components":[
      {"name":"auctionId","type":"uint256"},
      {"name":"tokenId","type":"uint256"},
      {"name":"amount","type":"uint256"},
      {"name":"startTime","type":"uint256"},
      {"name":"endTime","type":"uint256"},
      {"name":"reservePrice","type":"uint256"},
      {"name":"bidder","type":"address"},
      {"name":"auctioneer","type":"address"},
      {"name":"settled","type":"bool"}
    ]}
  ]}
]`

var (
	accessControlsABI = mustParseABI(accessControlsABIJSON)
	relayerABI        = mustParseABI(relayerABIJSON)
	tokenABI          = mustParseABI(tokenABIJSON)
	etsABI            = mustParseABI(etsABIJSON)
	targetABI         = mustParseABI(targetABIJSON)
	auctionHouseABI   = mustParseABI(auctionHouseABIJSON)
)

func mustParseABI(in string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(in))
	if err != nil {
		panic(err)
	}
	return parsed
}
