// pkg/api/comparison_v1.go
package api

// NeighborhoodV1 identifies one side of a comparison.
type NeighborhoodV1 struct {
	Accession string `json:"accession"`
	Organism  string `json:"organism,omitempty"`
	FirstCDS  int    `json:"first_cds"`
	LastCDS   int    `json:"last_cds"`
	Proteins  int    `json:"proteins"`
}

// PairingV1 is one matched slot. A and B hold one pid each for "porthodom"
// and two adjacent pids each for "porthodomO2".
type PairingV1 struct {
	A          []string `json:"a"`
	B          []string `json:"b"`
	Similarity float64  `json:"similarity"`
}

// ComparisonV1 is the stable JSONL schema for a scored neighborhood pair.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ComparisonV1 struct {
	Method     string         `json:"method"`
	A          NeighborhoodV1 `json:"a"`
	B          NeighborhoodV1 `json:"b"`
	Score      float64        `json:"score"`
	Normalizer int            `json:"normalizer"`
	Pairings   []PairingV1    `json:"pairings,omitempty"`
}
