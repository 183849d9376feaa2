package services

import (
	"strings"
	"time"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	"github.com/mis883/janus-pharma-portal/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// List filters by division preset ("All" or empty disables it) and a
// case-insensitive substring over brand name, composition and tags.
// Pure read; identical arguments give identical, identically-ordered
// results.
func (s *CatalogService) List(query, division string) ([]domain.Product, error) {
	return s.Prods.Filter(strings.ToLower(strings.TrimSpace(query)), strings.TrimSpace(division))
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) All() ([]domain.Product, error) { return s.Prods.List() }

func (s *CatalogService) Trending() ([]domain.Product, error) { return s.Prods.Trending() }

func (s *CatalogService) NewLaunches(now time.Time) ([]domain.Product, error) {
	cutoff := now.AddDate(0, 0, -domain.NewLaunchWindowDays).Format("2006-01-02")
	return s.Prods.NewLaunches(cutoff)
}

func (s *CatalogService) Divisions() ([]string, error) { return s.Prods.Divisions() }

// Save creates or updates a product. Only ADMIN may call it. A
// promotional SKU is always filed under the Marketing Inputs division
// and carries no composition, whatever the submitter sent.
func (s *CatalogService) Save(actor *domain.User, p domain.Product, isNew bool) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return ErrUnauthorized
	}
	if p.ID == "" || p.BrandName == "" || p.MRP.IsNegative() {
		return ErrMissingField
	}
	if p.IsPromotional {
		p.Division = domain.PromotionalDivision
		p.Composition = ""
	} else if p.Division == "" {
		p.Division = "General"
	}
	if p.StockStatus == "" {
		p.StockStatus = domain.StockAvailable
	}
	if p.TagsJSON == "" {
		p.TagsJSON = "[]"
	}
	if isNew {
		return s.Prods.Insert(p)
	}
	return s.Prods.Update(p)
}

func (s *CatalogService) ToggleTrending(actor *domain.User, id string) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return ErrUnauthorized
	}
	p, err := s.Prods.Get(id)
	if err != nil {
		return ErrNotFound
	}
	return s.Prods.SetTrending(id, !p.IsTrending)
}
