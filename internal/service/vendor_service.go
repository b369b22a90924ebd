package service

import (
	"sort"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
)

// TopVendorLimit is how many vendors the top-spend endpoint returns
const TopVendorLimit = 10

// VendorService handles vendor listing and spend ranking
type VendorService struct {
	vendorRepo domain.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo domain.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// List returns all vendors with their invoice counts, ordered by name
func (s *VendorService) List() ([]*domain.VendorWithCount, error) {
	return s.vendorRepo.ListWithCounts()
}

// TopBySpend returns the top vendors by invoiced spend within the optional
// issue-date range. Vendors with zero spend in the range are dropped.
func (s *VendorService) TopBySpend(start, end *time.Time) ([]*domain.VendorSpend, error) {
	vendors, err := s.vendorRepo.ListSpend(start, end)
	if err != nil {
		return nil, err
	}

	ranked := make([]*domain.VendorSpend, 0, len(vendors))
	for _, v := range vendors {
		if v == nil || !v.TotalSpend.IsPositive() {
			continue
		}
		ranked = append(ranked, v)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalSpend.Equal(ranked[j].TotalSpend) {
			return ranked[i].TotalSpend.GreaterThan(ranked[j].TotalSpend)
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > TopVendorLimit {
		ranked = ranked[:TopVendorLimit]
	}
	return ranked, nil
}
