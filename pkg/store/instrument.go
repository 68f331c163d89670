package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Ali-khavanin/tse-client/pkg/common"
)

var (
	ErrInstrumentNotPresent = errors.New("instrument is not present in instrument table")
)

// InstrumentStore is an in-memory catalog of instruments keyed by InsCode.
type InstrumentStore struct {
	mu          sync.RWMutex
	instruments map[int64]common.Instrument
}

func NewInstrumentStore(instruments ...common.Instrument) *InstrumentStore {
	s := &InstrumentStore{
		instruments: make(map[int64]common.Instrument, len(instruments)),
	}
	for _, inst := range instruments {
		s.instruments[inst.InsCode] = inst
	}
	return s
}

// Store inserts the instrument or replaces the one with the same InsCode.
func (s *InstrumentStore) Store(_ context.Context, inst common.Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instruments[inst.InsCode] = inst
	return nil
}

func (s *InstrumentStore) Contains(insCode int64) bool {
	if _, err := s.Get(insCode); err != nil {
		return false
	}
	return true
}

func (s *InstrumentStore) Get(insCode int64) (common.Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if inst, ok := s.instruments[insCode]; ok {
		return inst, nil
	}
	return common.Instrument{}, fmt.Errorf("unable to get instrument with ins code %d: %w", insCode, ErrInstrumentNotPresent)
}

func (s *InstrumentStore) MustGet(insCode int64) common.Instrument {
	inst, err := s.Get(insCode)
	if err != nil {
		panic(err.Error())
	}
	return inst
}

// FindSymbol matches either the local or the latin symbol, ignoring case.
// When several instruments share a symbol the lowest InsCode wins.
func (s *InstrumentStore) FindSymbol(symbol string) (common.Instrument, error) {
	for _, inst := range s.All() {
		if strings.EqualFold(inst.Symbol, symbol) || strings.EqualFold(inst.LatinSymbol, symbol) {
			return inst, nil
		}
	}
	return common.Instrument{}, fmt.Errorf("unable to get instrument with symbol %s: %w", symbol, ErrInstrumentNotPresent)
}

func (s *InstrumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instruments)
}

// All returns a snapshot sorted by InsCode.
func (s *InstrumentStore) All() []common.Instrument {
	s.mu.RLock()
	all := make([]common.Instrument, 0, len(s.instruments))
	for _, inst := range s.instruments {
		all = append(all, inst)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].InsCode < all[j].InsCode })
	return all
}
