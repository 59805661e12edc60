package store

import (
	"encoding/json"
	"fmt"
	"io"
)

// Records is the plain payload an entity loader hands to Build. Relation
// fields carry ids; ids that do not reference a loaded entity are ignored.
type Records struct {
	Metabolites []MetaboliteRecord `json:"metabolites"`
	Reactions   []ReactionRecord   `json:"reactions"`
	Pathways    []PathwayRecord    `json:"pathways"`
	Proteins    []ProteinRecord    `json:"proteins"`
	Genes       []GeneRecord       `json:"genes"`
}

// EntityRecord holds the fields common to all loader records.
type EntityRecord struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Synonyms []string       `json:"synonyms,omitempty"`
	Links    []ExternalLink `json:"links,omitempty"`
}

type MetaboliteRecord struct {
	EntityRecord
}

type ReactionRecord struct {
	EntityRecord
	PrimaryInputs    []string `json:"primaryInputs"`
	PrimaryOutputs   []string `json:"primaryOutputs"`
	SecondaryInputs  []string `json:"secondaryInputs,omitempty"`
	SecondaryOutputs []string `json:"secondaryOutputs,omitempty"`
	Catalysts        []string `json:"catalysts,omitempty"`
	Direction        string   `json:"direction,omitempty"`
	Pathways         []string `json:"pathways,omitempty"`
}

type PathwayRecord struct {
	EntityRecord
	Reactions []string `json:"reactions,omitempty"`
}

type ProteinRecord struct {
	EntityRecord
	Genes        []string `json:"genes,omitempty"`
	Compartments []string `json:"compartments,omitempty"`
}

type GeneRecord struct {
	EntityRecord
}

// Len returns the total number of records.
func (r *Records) Len() int {
	return len(r.Metabolites) + len(r.Reactions) + len(r.Pathways) + len(r.Proteins) + len(r.Genes)
}

// DecodeRecords reads the JSON form of Records.
func DecodeRecords(r io.Reader) (*Records, error) {
	var recs Records
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return &recs, nil
}

// EncodeRecords writes the JSON form of Records.
func EncodeRecords(w io.Writer, recs *Records) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}
