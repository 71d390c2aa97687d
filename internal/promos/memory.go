package promos

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
)

// MemoryStore keeps promo codes in process memory. It backs deployments
// without a database and the test suite.
type MemoryStore struct {
	mu     sync.RWMutex
	byCode map[string]pricing.Promo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byCode: make(map[string]pricing.Promo)}
}

func (s *MemoryStore) Lookup(_ context.Context, code string) (*pricing.Promo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promo, ok := s.byCode[normalizeCode(code)]
	if !ok {
		return nil, nil
	}
	copied := promo
	return &copied, nil
}

func (s *MemoryStore) Upsert(_ context.Context, promo pricing.Promo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	promo.Code = normalizeCode(promo.Code)
	s.byCode[promo.Code] = promo
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]pricing.Promo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pricing.Promo, 0, len(s.byCode))
	for _, promo := range s.byCode {
		out = append(out, promo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
