package services

import "petlink/internal/repos"

type LikeService struct {
	Repo *repos.LikeRepo
}

func NewLikeService(r *repos.LikeRepo) *LikeService { return &LikeService{Repo: r} }

// Toggle flips the like state and reports the action taken plus the fresh
// count. like→unlike is idempotent on the count by construction.
func (s *LikeService) Toggle(petID, userID int64) (action string, count int, err error) {
	liked, count, err := s.Repo.Toggle(petID, userID)
	if err != nil {
		return "", 0, err
	}
	if liked {
		return "liked", count, nil
	}
	return "unliked", count, nil
}
