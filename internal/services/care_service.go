package services

import (
	"errors"
	"strings"

	"petlink/internal/repos"
)

var (
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrPostMissing  = errors.New("post not found")
)

type CareService struct {
	Repo *repos.CareRepo
}

func NewCareService(r *repos.CareRepo) *CareService { return &CareService{Repo: r} }

func (s *CareService) ListPosts() ([]repos.PostRow, error) {
	return s.Repo.ListPosts()
}

func (s *CareService) PostWithComments(postID int64) (repos.PostRow, []repos.CommentRow, error) {
	post, err := s.Repo.GetPost(postID)
	if err != nil {
		return repos.PostRow{}, nil, ErrPostMissing
	}
	comments, err := s.Repo.Comments(postID)
	if err != nil {
		return repos.PostRow{}, nil, err
	}
	return post, comments, nil
}

func (s *CareService) CreatePost(userID int64, title, content string) (int64, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return 0, ErrEmptyContent
	}
	return s.Repo.CreatePost(userID, title, content)
}

// AddComment rejects blank content and comments on unknown posts with
// user-facing errors, never a constraint failure.
func (s *CareService) AddComment(postID, userID int64, content string) (int64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, ErrEmptyContent
	}
	ok, err := s.Repo.PostExists(postID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrPostMissing
	}
	return s.Repo.AddComment(postID, userID, content)
}
