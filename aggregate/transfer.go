package aggregate

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"go.uber.org/zap"
)

// TransferKind classifies a CTAG transfer against the zero and platform addresses.
type TransferKind int

const (
	TransferOther TransferKind = iota
	TransferMint
	TransferAuctionSale
	TransferRecycle
	TransferPeer
	TransferBurn
)

func (k TransferKind) String() string {
	switch k {
	case TransferMint:
		return "mint"
	case TransferAuctionSale:
		return "auction_sale"
	case TransferRecycle:
		return "recycle"
	case TransferPeer:
		return "peer"
	case TransferBurn:
		return "burn"
	}
	return "other"
}

// ClassifyTransfer returns the single case (from, to) falls in. Ids are lower-case hex.
func ClassifyTransfer(from, to, platform string) TransferKind {
	fromZero := from == model.ZeroAddress
	toZero := to == model.ZeroAddress
	fromPlatform := !fromZero && from == platform
	toPlatform := !toZero && to == platform

	switch {
	case fromZero && toPlatform:
		return TransferMint
	case fromPlatform && !toZero && !toPlatform:
		return TransferAuctionSale
	case !fromZero && !fromPlatform && toPlatform:
		return TransferRecycle
	case !fromZero && !toZero && !fromPlatform && !toPlatform:
		return TransferPeer
	case !fromZero && toZero:
		return TransferBurn
	}
	return TransferOther
}

// Transfer moves a CTAG between owners and reclassifies ownership counters.
func (s *Session) Transfer(from, to common.Address, tokenID *big.Int) error {
	platform, err := s.platformAddress()
	if err != nil {
		return err
	}

	fromID, toID := model.AddressID(from), model.AddressID(to)
	kind := ClassifyTransfer(fromID, toID, platform)

	if tracer.Enabled() {
		s.logger.Debug("tag transfer", zap.String("from", fromID), zap.String("to", toID), zap.Stringer("token_id", tokenID), zap.Stringer("kind", kind))
	}

	switch kind {
	case TransferMint:
		if _, err := s.EnsureTag(tokenID); err != nil {
			return err
		}
		if err := s.creditOwner(to, true); err != nil {
			return err
		}

	case TransferAuctionSale, TransferPeer:
		if err := s.creditOwner(to, true); err != nil {
			return err
		}
		if err := s.debitOwner(from); err != nil {
			return err
		}

	case TransferRecycle:
		if err := s.creditOwner(to, false); err != nil {
			return err
		}
		if err := s.debitOwner(from); err != nil {
			return err
		}

	case TransferBurn:
		if err := s.debitOwner(from); err != nil {
			return err
		}

	default:
		s.logger.Warn("unclassified tag transfer, ownership untouched",
			zap.String("from", fromID),
			zap.String("to", toID),
			zap.Stringer("token_id", tokenID),
			zap.String("platform", platform),
		)
		_, err := s.EnsureTag(tokenID)
		return err
	}

	tag, err := s.EnsureTag(tokenID)
	if err != nil {
		return err
	}
	return update(s, store.Tags, tag.ID, func(t *model.Tag) { t.Owner = toID })
}

func (s *Session) creditOwner(addr common.Address, lifetime bool) error {
	owner, err := s.EnsureOwner(addr)
	if err != nil {
		return err
	}

	return update(s, store.Owners, owner.ID, func(o *model.Owner) {
		o.TagsOwned++
		if lifetime {
			o.TagsOwnedLifetime++
		}
	})
}

func (s *Session) debitOwner(addr common.Address) error {
	owner, err := s.EnsureOwner(addr)
	if err != nil {
		return err
	}

	return update(s, store.Owners, owner.ID, func(o *model.Owner) { o.TagsOwned-- })
}
