package services

import (
	"errors"

	"petlink/internal/domain"
	"petlink/internal/repos"
)

// ErrNotYourPet reports a mutation that matched no row, which for the
// owner-scoped statements means the pet does not exist or belongs to a
// different owner. The two cases are indistinguishable on purpose.
var ErrNotYourPet = errors.New("pet not found or not yours")

// ShelterService covers the owner-side pet management.
type ShelterService struct {
	Pets *repos.PetRepo
	Cats *repos.CategoryRepo
}

func NewShelterService(pets *repos.PetRepo, cats *repos.CategoryRepo) *ShelterService {
	return &ShelterService{Pets: pets, Cats: cats}
}

func (s *ShelterService) ListPets(ownerID int64) ([]repos.PetCard, error) {
	return s.Pets.ListByOwner(ownerID)
}

func (s *ShelterService) AddPet(ownerID int64, p domain.Pet) (int64, error) {
	ok, err := s.Cats.Exists(p.CategoryID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("unknown category")
	}
	p.OwnerID = ownerID
	return s.Pets.Create(p)
}

func (s *ShelterService) UpdatePet(petID, ownerID int64, p domain.Pet) error {
	ok, err := s.Cats.Exists(p.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("unknown category")
	}
	matched, err := s.Pets.Update(petID, ownerID, p)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotYourPet
	}
	return nil
}

func (s *ShelterService) DeletePet(petID, ownerID int64) error {
	matched, err := s.Pets.Delete(petID, ownerID)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotYourPet
	}
	return nil
}
