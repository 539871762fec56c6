// Package settings keeps the investment rate card used when an assessment
// does not bring its own figures. It is process-local configuration, guarded
// for concurrent handlers, and editable only through the admin endpoints.
package settings

import (
	"fmt"
	"sync"

	"mechapres/internal/calc/economics"
)

const (
	maxFixedCostGBP = 10_000_000
	maxPerKWCostGBP = 5_000
)

type Store struct {
	mu  sync.RWMutex
	inv economics.Investment
}

// NewStore seeds the store; a zero-value seed means the house defaults.
func NewStore(inv economics.Investment) *Store {
	if inv == (economics.Investment{}) {
		inv = economics.DefaultInvestment()
	}
	return &Store{inv: inv}
}

func (s *Store) Investment() economics.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inv
}

func (s *Store) SetInvestment(inv economics.Investment) error {
	if inv.DesignPMGBP < 0 || inv.FixedInstallGBP < 0 ||
		inv.HPCostPerKW < 0 || inv.HRCostPerKW < 0 || inv.VarInstallPerKW < 0 {
		return fmt.Errorf("investment costs must not be negative")
	}
	if inv.DesignPMGBP > maxFixedCostGBP || inv.FixedInstallGBP > maxFixedCostGBP {
		return fmt.Errorf("fixed costs must not exceed £%d", maxFixedCostGBP)
	}
	if inv.HPCostPerKW > maxPerKWCostGBP || inv.HRCostPerKW > maxPerKWCostGBP || inv.VarInstallPerKW > maxPerKWCostGBP {
		return fmt.Errorf("per-kW costs must not exceed £%d", maxPerKWCostGBP)
	}
	s.mu.Lock()
	s.inv = inv
	s.mu.Unlock()
	return nil
}
