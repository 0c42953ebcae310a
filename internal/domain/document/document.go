// Package document defines the candidate record that flows from the store
// through retrieval into synthesis.
package document

import "strings"

// Type discriminates which domain a candidate belongs to. It is stamped at
// ingestion time and stored in metadata under MetaDocType; consumers partition
// combined context lists on it instead of sniffing field presence.
type Type string

// Known document types.
const (
	TypeShoe     Type = "shoe"
	TypePlayer   Type = "player"
	TypeDrill    Type = "drill"
	TypeRule     Type = "rule"
	TypeGlossary Type = "glossary"
)

// MetaDocType is the metadata key carrying the type discriminator.
const MetaDocType = "doc_type"

// IsValid reports whether t is a known document type.
func (t Type) IsValid() bool {
	switch t {
	case TypeShoe, TypePlayer, TypeDrill, TypeRule, TypeGlossary:
		return true
	}
	return false
}

// Candidate is a single retrieved document: free-form content plus flat
// string metadata, positioned by the similarity order the store returned.
// Filtering never mutates a candidate; it produces new sequences.
type Candidate struct {
	id       string
	docType  Type
	content  string
	metadata map[string]string
}

// New creates a candidate. The doc_type discriminator is read from metadata.
func New(id, content string, metadata map[string]string) Candidate {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return Candidate{
		id:       id,
		docType:  Type(metadata[MetaDocType]),
		content:  content,
		metadata: metadata,
	}
}

// ID returns the document identifier.
func (c *Candidate) ID() string { return c.id }

// DocType returns the domain discriminator.
func (c *Candidate) DocType() Type { return c.docType }

// Content returns the free-form document text.
func (c *Candidate) Content() string { return c.content }

// Meta returns a single metadata value ("" if absent).
func (c *Candidate) Meta(key string) string { return c.metadata[key] }

// MetaList returns a list-valued metadata field, comma-decoded.
func (c *Candidate) MetaList(key string) []string { return DecodeList(c.metadata[key]) }

// Metadata returns the full metadata map. Callers must not mutate it.
func (c *Candidate) Metadata() map[string]string { return c.metadata }

// EncodeList joins list-valued metadata into the store's comma-joined string
// convention. An empty list encodes as the empty string.
func EncodeList(values []string) string {
	return strings.Join(values, ",")
}

// DecodeList splits a comma-joined metadata value back into a list, trimming
// whitespace and dropping empty elements.
func DecodeList(encoded string) []string {
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
