package retrieval

import domdoc "github.com/courtlab/assist/internal/domain/document"

// CrossAnalysisResult combines the shoe shortlist with the matched player
// archetypes. Shoes are bounded by the requested count; players by the fixed
// player sub-limit.
type CrossAnalysisResult struct {
	Shoes   []domdoc.Candidate
	Players []domdoc.Candidate
}

// HybridSearchResult holds rule excerpts and glossary definitions retrieved
// for one situation. The two sequences stay separate because synthesis treats
// them as distinct prompt sections.
type HybridSearchResult struct {
	Rules    []domdoc.Candidate
	Glossary []domdoc.Candidate
}
