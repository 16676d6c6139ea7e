package model

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// PercentModulo is the denominator of every percentage setting.
	PercentModulo int64 = 100

	ZeroAddress = "0x0000000000000000000000000000000000000000"

	GlobalSettingsID = "globalSettings"
	ReleaseID        = "ETSRelease"
	PlatformID       = "ETSPlatform"
	CheckpointID     = "cursor"
)

var (
	// DefaultAdminRole is the OpenZeppelin DEFAULT_ADMIN_ROLE, granted to platform administrators.
	DefaultAdminRole = common.Hash{}
	// RelayerAdminRole is keccak256("RELAYER_ADMIN").
	RelayerAdminRole = crypto.Keccak256Hash([]byte("RELAYER_ADMIN"))
)

func Zero() *big.Int { return new(big.Int) }

func One() *big.Int { return big.NewInt(1) }

// AddressID renders an address as an entity id.
func AddressID(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// NumericID renders a token, record or auction id as an entity id.
func NumericID(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

// Action is the tagging record mutation kind.
type Action int

const (
	ActionCreate Action = iota
	ActionAppend
	ActionRemove
)

// Wire values of the on-chain TaggingAction enum.
const (
	taggingActionAppend  uint64 = 0
	taggingActionReplace uint64 = 1
	taggingActionRemove  uint64 = 2
)

// ActionFromCode maps the action code carried by TaggingRecordUpdated.
func ActionFromCode(code uint64) (Action, error) {
	switch code {
	case taggingActionAppend:
		return ActionAppend, nil
	case taggingActionRemove:
		return ActionRemove, nil
	case taggingActionReplace:
		return 0, fmt.Errorf("replace action code %d is not supported", code)
	default:
		return 0, fmt.Errorf("unknown action code %d", code)
	}
}

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "CREATE"
	case ActionAppend:
		return "APPEND"
	case ActionRemove:
		return "REMOVE"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Role identifies a stakeholder sharing in a fee.
type Role int

const (
	RolePlatform Role = iota
	RoleRelayer
	RoleOwner
	RoleCreator
	RoleTagger
)

func (r Role) String() string {
	switch r {
	case RolePlatform:
		return "PLATFORM"
	case RoleRelayer:
		return "RELAYER"
	case RoleOwner:
		return "OWNER"
	case RoleCreator:
		return "CREATOR"
	case RoleTagger:
		return "TAGGER"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ContractKind names the deployed contract an event was emitted by.
type ContractKind int

const (
	ContractUnknown ContractKind = iota
	ContractETS
	ContractToken
	ContractAccessControls
	ContractAuctionHouse
	ContractTarget
	ContractRelayer
)

func (k ContractKind) String() string {
	switch k {
	case ContractETS:
		return "ets"
	case ContractToken:
		return "etsToken"
	case ContractAccessControls:
		return "etsAccessControls"
	case ContractAuctionHouse:
		return "etsAuctionHouse"
	case ContractTarget:
		return "etsTarget"
	case ContractRelayer:
		return "etsRelayer"
	}
	return "unknown"
}
