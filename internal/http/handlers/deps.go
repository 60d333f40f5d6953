package handlers

import (
	"petlink/internal/repos"
	"petlink/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	PetHandler      *PetHandler
	AdoptionHandler *AdoptionHandler
	OwnerHandler    *OwnerHandler
	CareHandler     *CareHandler
	LikeHandler     *LikeHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	petRepo := repos.NewPetRepo(db)
	reqRepo := repos.NewRequestRepo(db)
	careRepo := repos.NewCareRepo(db)
	likeRepo := repos.NewLikeRepo(db)
	anlRepo := repos.NewAnalyticsRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, petRepo)
	adoptionSvc := services.NewAdoptionService(reqRepo, petRepo)
	shelterSvc := services.NewShelterService(petRepo, catRepo)
	careSvc := services.NewCareService(careRepo)
	likeSvc := services.NewLikeService(likeRepo)
	anlSvc := services.NewAnalyticsService(anlRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: auth, Adoption: adoptionSvc},
		PetHandler:      &PetHandler{Catalog: catalogSvc},
		AdoptionHandler: &AdoptionHandler{Adoption: adoptionSvc},
		OwnerHandler: &OwnerHandler{
			Shelter:   shelterSvc,
			Adoption:  adoptionSvc,
			Analytics: anlSvc,
			Catalog:   catalogSvc,
		},
		CareHandler: &CareHandler{Care: careSvc},
		LikeHandler: &LikeHandler{Likes: likeSvc},
	}
}
