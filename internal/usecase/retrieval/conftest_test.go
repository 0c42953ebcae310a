package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/repository/collection"
)

type knnCall struct {
	collection string
	predicates map[string]string
	topK       int
}

type fakeRepo struct {
	results map[string][]domdoc.Candidate
	errs    map[string]error
	calls   []knnCall
}

func (f *fakeRepo) SearchKNN(
	_ context.Context, col collection.Collection,
	_ []float32, predicates map[string]string, topK int,
) ([]domdoc.Candidate, error) {
	f.calls = append(f.calls, knnCall{collection: col.Name, predicates: predicates, topK: topK})
	if err := f.errs[col.Name]; err != nil {
		return nil, err
	}
	res := f.results[col.Name]
	if len(res) > topK {
		res = res[:topK]
	}
	return res, nil
}

type fakeEmbedder struct {
	texts []string
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: []float32{1, 0}, TotalTokens: 1}, nil
}

var testRegistry = collection.NewRegistry(2, collection.HNSWConfig{})

func shoe(id, brand, model, price string, tags ...string) domdoc.Candidate {
	return domdoc.New(id, "Brand: "+brand+"\nModel: "+model, map[string]string{
		domdoc.MetaDocType: string(domdoc.TypeShoe),
		"brand":            brand,
		"model_name":       model,
		"price_krw":        price,
		"tags":             domdoc.EncodeList(tags),
	})
}

func player(name string, signatureShoes ...string) domdoc.Candidate {
	return domdoc.New(name, "Player: "+name, map[string]string{
		domdoc.MetaDocType: string(domdoc.TypePlayer),
		"name":             name,
		"signature_shoes":  domdoc.EncodeList(signatureShoes),
	})
}

func rule(id, ruleType, content string) domdoc.Candidate {
	return domdoc.New(id, content, map[string]string{
		domdoc.MetaDocType: string(domdoc.TypeRule),
		"rule_type":        ruleType,
	})
}

func drill(id string, requiredEquipment ...string) domdoc.Candidate {
	return domdoc.New(id, "Drill: "+id, map[string]string{
		domdoc.MetaDocType:   string(domdoc.TypeDrill),
		"name":               id,
		"required_equipment": domdoc.EncodeList(requiredEquipment),
	})
}

func newShoeService(repo *fakeRepo, emb *fakeEmbedder) *ShoeService {
	return NewShoeService(repo, testRegistry, emb, zap.NewNop())
}

func newRuleService(repo *fakeRepo, emb *fakeEmbedder) *RuleService {
	return NewRuleService(repo, testRegistry, emb, zap.NewNop())
}

func newDrillService(repo *fakeRepo, emb *fakeEmbedder) *DrillService {
	return NewDrillService(repo, testRegistry, emb, zap.NewNop())
}

func ids(cands []domdoc.Candidate) []string {
	out := make([]string, 0, len(cands))
	for i := range cands {
		out = append(out, cands[i].ID())
	}
	return out
}
