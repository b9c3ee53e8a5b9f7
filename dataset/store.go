package dataset

import (
	"log"

	"github.com/patrickmn/go-cache"

	"go-vulndash/geo"
)

const (
	keyTable      = "indicator_table"
	keyBoundaries = "boundaries"
)

// Store hands out the parsed indicator table and boundary set, loading each
// file at most once per process. The source files never change during a
// session; a restart is the only refresh.
type Store struct {
	indicatorPath string
	boundaryPath  string
	cache         *cache.Cache
}

func NewStore(indicatorPath, boundaryPath string) *Store {
	return &Store{
		indicatorPath: indicatorPath,
		boundaryPath:  boundaryPath,
		cache:         cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// Table returns the cached indicator table, loading it on first use.
func (s *Store) Table() (*Table, error) {
	if v, ok := s.cache.Get(keyTable); ok {
		return v.(*Table), nil
	}
	t, err := LoadIndicatorTable(s.indicatorPath)
	if err != nil {
		return nil, err
	}
	for _, w := range t.Warnings {
		log.Printf("indicator table row %d: %s", w.Row, w.Message)
	}
	s.cache.Set(keyTable, t, cache.NoExpiration)
	return t, nil
}

// Boundaries returns the cached boundary set, loading it on first use.
func (s *Store) Boundaries() (*geo.BoundarySet, error) {
	if v, ok := s.cache.Get(keyBoundaries); ok {
		return v.(*geo.BoundarySet), nil
	}
	b, err := geo.LoadBoundaries(s.boundaryPath)
	if err != nil {
		return nil, err
	}
	s.cache.Set(keyBoundaries, b, cache.NoExpiration)
	return b, nil
}
