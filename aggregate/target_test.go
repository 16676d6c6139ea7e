package aggregate

import (
	"math/big"
	"testing"

	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTarget(t *testing.T) {
	examples := []struct {
		uri              string
		expectedType     string
		expectedKeywords []string
	}{
		{"https://Example.com/path?q=1", TargetTypeURL, []string{"url", "https", "example.com"}},
		{"http://localhost:8080", TargetTypeURL, []string{"url", "http", "localhost"}},
		{"ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi", TargetTypeIPFS, []string{"ipfs"}},
		{"/ipfs/Qm123", TargetTypeIPFS, []string{"ipfs"}},
		{"ar://bNbA3TEQVL60xlgCcqdz4ZPHFZ711cZ3hmkpGttDt_U", TargetTypeArweave, []string{"arweave"}},
		{"did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK", TargetTypeDID, []string{"did", "key"}},
		{"blink:eip155:1:0xabc", TargetTypeBlockchain, []string{"blockchain", "eip155", "1"}},
		{"just some text", TargetTypeUnknown, []string{}},
		{"", TargetTypeUnknown, []string{}},
	}

	for _, test := range examples {
		t.Run(test.uri, func(t *testing.T) {
			targetType, keywords := ClassifyTarget(test.uri)
			assert.Equal(t, test.expectedType, targetType)
			assert.Equal(t, test.expectedKeywords, keywords)
		})
	}
}

func (s *AggregateTest) TestEnsureTarget_Idempotent() {
	s.reader.Targets["9"] = &chain.TargetView{
		TargetURI:  "ipfs://bafy",
		CreatedBy:  relayerA,
		Enriched:   big.NewInt(1_650_000_500),
		HTTPStatus: big.NewInt(200),
		IPFSHash:   "bafy",
	}

	first, err := s.session().EnsureTarget(big.NewInt(9))
	s.Require().NoError(err)
	_, err = s.session().EnsureTarget(big.NewInt(9))
	s.Require().NoError(err)

	s.Equal(1, s.reader.Calls("getTargetById"))
	s.Equal(int64(1), s.platform().TargetsCount)
	s.Equal(TargetTypeIPFS, first.TargetType)
	s.Equal(uint64(200), first.HTTPStatus)
	s.Equal(uint64(1_650_000_500), first.Enriched)

	s.reader.Targets["9"].HTTPStatus = big.NewInt(404)
	s.Require().NoError(s.session().TargetUpdated(big.NewInt(9)))

	s.Equal(2, s.reader.Calls("getTargetById"))
	s.Equal(int64(1), s.platform().TargetsCount)
}
