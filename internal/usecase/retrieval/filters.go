package retrieval

import (
	"strconv"
	"strings"

	"github.com/courtlab/assist/internal/domain/catalog"
	domdoc "github.com/courtlab/assist/internal/domain/document"
)

// positionTagKeywords maps a playing position to the stored tag values that
// mark a shoe as suitable for it. Positions outside this map are unverifiable
// and the filter passes candidates through untouched.
var positionTagKeywords = map[string][]string{
	"guard":   {"가드", "로우컷"},
	"forward": {"포워드", "미드컷"},
	"center":  {"센터", "하이컷", "빅맨"},
}

// filterByBudget keeps candidates priced at or under maxKRW. A candidate whose
// price field is missing or not an integer is dropped, fail-closed: an
// unpriced shoe must not slip under a budget ceiling. maxKRW <= 0 disables
// the filter.
func filterByBudget(candidates []domdoc.Candidate, maxKRW int) []domdoc.Candidate {
	if maxKRW <= 0 {
		return candidates
	}

	out := make([]domdoc.Candidate, 0, len(candidates))
	for _, c := range candidates {
		price, err := strconv.Atoi(c.Meta(catalog.MetaPriceKRW))
		if err != nil {
			continue
		}
		if price <= maxKRW {
			out = append(out, c)
		}
	}
	return out
}

// filterByPosition keeps candidates whose tag list carries one of the keywords
// mapped to the position. Matching is case-insensitive. An empty or unknown
// position disables the filter (pass-open for unverifiable input).
func filterByPosition(candidates []domdoc.Candidate, position string) []domdoc.Candidate {
	position = strings.ToLower(strings.TrimSpace(position))
	if position == "" {
		return candidates
	}
	keywords, ok := positionTagKeywords[position]
	if !ok {
		return candidates
	}

	out := make([]domdoc.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if tagsContainAny(c.MetaList(catalog.MetaTags), keywords) {
			out = append(out, c)
		}
	}
	return out
}

func tagsContainAny(tags, keywords []string) bool {
	for _, tag := range tags {
		for _, kw := range keywords {
			if tag == kw {
				return true
			}
		}
	}
	return false
}

// filterByEquipment keeps drills whose required equipment is fully covered by
// what the user has. An empty available list disables the filter; a drill with
// no requirements always passes.
func filterByEquipment(candidates []domdoc.Candidate, available []string) []domdoc.Candidate {
	if len(available) == 0 {
		return candidates
	}

	have := make(map[string]bool, len(available))
	for _, e := range available {
		have[e] = true
	}

	out := make([]domdoc.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if equipmentCovered(c.MetaList(catalog.MetaEquipment), have) {
			out = append(out, c)
		}
	}
	return out
}

func equipmentCovered(required []string, have map[string]bool) bool {
	for _, r := range required {
		if !have[r] {
			return false
		}
	}
	return true
}
