package services

import (
	"strings"

	"petlink/internal/domain"
	"petlink/internal/repos"
)

// Listing caps: the homepage feed shows a handful, search is bounded hard.
const (
	HomeFeedLimit    = 6
	AdoptPageLimit   = 100
	SearchResultsCap = 50
)

type CatalogService struct {
	Cats *repos.CategoryRepo
	Pets *repos.PetRepo
}

func NewCatalogService(cats *repos.CategoryRepo, pets *repos.PetRepo) *CatalogService {
	return &CatalogService{Cats: cats, Pets: pets}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// HomeFeed returns the newest available pets for the landing page. viewerID
// is 0 for anonymous visitors and owner sessions; only user sessions get
// is_liked annotations.
func (s *CatalogService) HomeFeed(viewerID int64) ([]repos.PetCard, error) {
	return s.Pets.ListAvailable(viewerID, "", HomeFeedLimit)
}

func (s *CatalogService) AdoptListing(viewerID int64, categoryName string) ([]repos.PetCard, error) {
	return s.Pets.ListAvailable(viewerID, strings.TrimSpace(categoryName), AdoptPageLimit)
}

// Search matches name or breed case-insensitively, optionally filtered by
// adoption status, capped at SearchResultsCap rows.
func (s *CatalogService) Search(q, status string) ([]repos.PetCard, error) {
	return s.Pets.Search(strings.ToLower(strings.TrimSpace(q)), status, SearchResultsCap)
}

func (s *CatalogService) PetDetail(petID, viewerID int64) (repos.PetDetailRow, error) {
	return s.Pets.Detail(petID, viewerID)
}
