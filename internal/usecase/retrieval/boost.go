package retrieval

import (
	"strings"

	"github.com/courtlab/assist/internal/domain/catalog"
	domdoc "github.com/courtlab/assist/internal/domain/document"
)

// boostSignatureShoes reorders candidates so shoes matching any signature
// model come first. A candidate matches when its brand+model text contains a
// signature model name, case-insensitively. The partition is stable: relative
// order inside each group is preserved, and set membership never changes.
func boostSignatureShoes(candidates []domdoc.Candidate, signatureModels []string) []domdoc.Candidate {
	if len(signatureModels) == 0 || len(candidates) == 0 {
		return candidates
	}

	models := make([]string, 0, len(signatureModels))
	for _, m := range signatureModels {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return candidates
	}

	signature := make([]domdoc.Candidate, 0, len(candidates))
	rest := make([]domdoc.Candidate, 0, len(candidates))

	for _, c := range candidates {
		brandModel := strings.ToLower(
			c.Meta(catalog.MetaBrand) + " " + c.Meta(catalog.MetaModelName),
		)
		if containsAny(brandModel, models) {
			signature = append(signature, c)
		} else {
			rest = append(rest, c)
		}
	}

	return append(signature, rest...)
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
