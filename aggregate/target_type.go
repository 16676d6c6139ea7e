package aggregate

import (
	"net/url"
	"strings"
)

// Target types derived from the target URI.
const (
	TargetTypeURL        = "url"
	TargetTypeIPFS       = "ipfs"
	TargetTypeArweave    = "arweave"
	TargetTypeDID        = "did"
	TargetTypeBlockchain = "blockchain"
	TargetTypeUnknown    = "unknown"
)

// ClassifyTarget derives the target type and search keywords of uri.
//
//	https://example.com/a      -> url        [url https example.com]
//	ipfs://bafy...             -> ipfs       [ipfs]
//	ar://tx                    -> arweave    [arweave]
//	did:key:z6Mk...            -> did        [did key]
//	blink:eip155:1:0xabc...    -> blockchain [blockchain eip155 1]
func ClassifyTarget(uri string) (string, []string) {
	uri = strings.TrimSpace(uri)
	lower := strings.ToLower(uri)

	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		scheme, _, _ := strings.Cut(lower, ":")
		keywords := []string{TargetTypeURL, scheme}
		if u, err := url.Parse(uri); err == nil && u.Hostname() != "" {
			keywords = append(keywords, strings.ToLower(u.Hostname()))
		}
		return TargetTypeURL, keywords

	case strings.HasPrefix(lower, "ipfs://"), strings.HasPrefix(lower, "/ipfs/"):
		return TargetTypeIPFS, []string{TargetTypeIPFS}

	case strings.HasPrefix(lower, "ar://"), strings.HasPrefix(lower, "arweave://"):
		return TargetTypeArweave, []string{TargetTypeArweave}

	case strings.HasPrefix(lower, "did:"):
		keywords := []string{TargetTypeDID}
		if parts := strings.SplitN(lower, ":", 3); len(parts) == 3 && parts[1] != "" {
			keywords = append(keywords, parts[1])
		}
		return TargetTypeDID, keywords

	case strings.HasPrefix(lower, "blink:"):
		keywords := []string{TargetTypeBlockchain}
		parts := strings.Split(lower, ":")
		// blink:<namespace>:<chain id>:<reference>
		if len(parts) >= 3 {
			keywords = append(keywords, parts[1], parts[2])
		}
		return TargetTypeBlockchain, keywords
	}

	return TargetTypeUnknown, []string{}
}
