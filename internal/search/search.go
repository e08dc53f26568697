// Package search provides the free-text operator lookup behind the read
// API: an in-memory index over the CADOP registry with fixed field weights.
package search

import (
	"log"
	"sort"
	"strings"

	"github.com/ans-dados/ans-dados/internal/models"
	"github.com/ans-dados/ans-dados/internal/registry"
	"github.com/ans-dados/ans-dados/internal/textnorm"
)

// Field weights: an exact-substring hit on the registration number is worth
// more than one on the tax id, which outranks the trade and corporate names.
const (
	weightRegistroANS  = 10
	weightCNPJ         = 9
	weightNomeFantasia = 5
	weightRazaoSocial  = 4
)

// Hit is one scored search result.
type Hit struct {
	Score int `json:"score"`
	models.Operator
}

type indexEntry struct {
	registroANS  string
	cnpj         string
	nomeFantasia string
	razaoSocial  string
}

// Service holds the loaded operators and their normalized index. Load once,
// query many times; the service is read-only after Load.
type Service struct {
	items []models.Operator
	index []indexEntry
}

// NewService builds a searchable index over the given operators.
func NewService(operators []models.Operator) *Service {
	s := &Service{
		items: operators,
		index: make([]indexEntry, len(operators)),
	}
	for i, op := range operators {
		s.index[i] = indexEntry{
			registroANS:  textnorm.Query(op.RegistroANS),
			cnpj:         textnorm.Query(op.CNPJ),
			nomeFantasia: textnorm.Query(op.NomeFantasia),
			razaoSocial:  textnorm.Query(op.RazaoSocial),
		}
	}
	return s
}

// LoadService reads the registry file and indexes it. A missing or
// malformed registry degrades to an empty index with a diagnostic; the API
// stays up and answers with no results.
func LoadService(csvPath string) *Service {
	operators, err := registry.Load(csvPath)
	if err != nil {
		log.Printf("WARN: Could not load operator registry: %v", err)
		return NewService(nil)
	}
	log.Printf("Loaded %d operators into the search index", len(operators))
	return NewService(operators)
}

// Count returns the number of indexed operators.
func (s *Service) Count() int {
	return len(s.items)
}

// Search scores every operator against the normalized query: each field
// containing the query as a substring adds its weight. Zero-score records
// are excluded, results sort by descending score with ties in source order,
// and the list is truncated to limit.
func (s *Service) Search(query string, limit int) []Hit {
	q := textnorm.Query(query)
	if q == "" || limit <= 0 {
		return nil
	}

	var hits []Hit
	for i, idx := range s.index {
		score := 0
		if strings.Contains(idx.registroANS, q) {
			score += weightRegistroANS
		}
		if strings.Contains(idx.cnpj, q) {
			score += weightCNPJ
		}
		if strings.Contains(idx.nomeFantasia, q) {
			score += weightNomeFantasia
		}
		if strings.Contains(idx.razaoSocial, q) {
			score += weightRazaoSocial
		}

		if score > 0 {
			hits = append(hits, Hit{Score: score, Operator: s.items[i]})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
