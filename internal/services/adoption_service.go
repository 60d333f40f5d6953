package services

import (
	"errors"

	"petlink/internal/domain"
	"petlink/internal/repos"
)

// ErrNotDecidable reports a status update that matched nothing: unknown
// request, a pet belonging to someone else, or a request already decided.
var ErrNotDecidable = errors.New("request not found or already decided")

const defaultRequestMessage = "I am interested in adopting this pet. Please contact me to discuss further details."

type AdoptionService struct {
	Requests *repos.RequestRepo
	Pets     *repos.PetRepo
}

func NewAdoptionService(requests *repos.RequestRepo, pets *repos.PetRepo) *AdoptionService {
	return &AdoptionService{Requests: requests, Pets: pets}
}

// Request files a pending adoption request. A blank message gets the stock
// text. Duplicate (user, pet) pairs surface repos.ErrDuplicateRequest.
func (s *AdoptionService) Request(userID, petID int64, message string) error {
	if message == "" {
		message = defaultRequestMessage
	}
	_, err := s.Requests.Create(userID, petID, message)
	return err
}

// Decide approves or rejects a pending request on behalf of ownerID.
// Approval marks the pet adopted as a side effect; other pending requests
// for the same pet stay pending and may still be decided later.
func (s *AdoptionService) Decide(requestID, ownerID int64, status string) error {
	if status != domain.RequestApproved && status != domain.RequestRejected {
		return errors.New("invalid status")
	}
	ok, err := s.Requests.Decide(requestID, ownerID, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotDecidable
	}
	return nil
}

func (s *AdoptionService) RequestsForUser(userID int64) ([]repos.UserRequestRow, error) {
	return s.Requests.ListByUser(userID)
}

func (s *AdoptionService) RequestsForOwner(ownerID int64) ([]repos.OwnerRequestRow, error) {
	return s.Requests.ListByOwner(ownerID)
}
