package services

import (
	"sort"

	"petlink/internal/repos"
)

const (
	dashboardTopPets = 5
	analyticsTopPets = 10
	activityLimit    = 10
)

type AnalyticsService struct {
	Repo *repos.AnalyticsRepo
}

func NewAnalyticsService(r *repos.AnalyticsRepo) *AnalyticsService {
	return &AnalyticsService{Repo: r}
}

func (s *AnalyticsService) DashboardStats(ownerID int64) (repos.DashboardStats, error) {
	return s.Repo.Stats(ownerID)
}

func (s *AnalyticsService) DashboardTopPets(ownerID int64) ([]repos.TopPetRow, error) {
	return s.Repo.TopPets(ownerID, dashboardTopPets)
}

// RecentActivity merges the two event kinds (request status changes and pet
// additions) into one reverse-chronological feed. Events with a blank
// timestamp sort last; the merged feed is truncated to the newest ten.
func (s *AnalyticsService) RecentActivity(ownerID int64) ([]repos.ActivityEvent, error) {
	reqs, err := s.Repo.RecentRequestEvents(ownerID, activityLimit)
	if err != nil {
		return nil, err
	}
	pets, err := s.Repo.RecentPetEvents(ownerID, activityLimit)
	if err != nil {
		return nil, err
	}

	events := append(reqs, pets...)
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].CreatedAt, events[j].CreatedAt
		if (a == "") != (b == "") {
			return a != "" // blank timestamps last
		}
		return a > b
	})
	if len(events) > activityLimit {
		events = events[:activityLimit]
	}
	return events, nil
}

// Report is the payload of the analytics JSON endpoint.
type Report struct {
	PetsByStatus         map[string]int        `json:"pets_by_status"`
	RequestsByStatus     map[string]int        `json:"requests_by_status"`
	TopPets              []repos.TopPetRow     `json:"top_pets"`
	CategoryDistribution []repos.CategoryCount `json:"category_distribution"`
}

func (s *AnalyticsService) BuildReport(ownerID int64) (Report, error) {
	rpt := Report{
		PetsByStatus:     map[string]int{},
		RequestsByStatus: map[string]int{},
		TopPets:          []repos.TopPetRow{},
	}

	petRows, err := s.Repo.PetsByStatus(ownerID)
	if err != nil {
		return Report{}, err
	}
	for _, r := range petRows {
		rpt.PetsByStatus[r.Status] = r.Count
	}

	reqRows, err := s.Repo.RequestsByStatus(ownerID)
	if err != nil {
		return Report{}, err
	}
	for _, r := range reqRows {
		rpt.RequestsByStatus[r.Status] = r.Count
	}

	top, err := s.Repo.TopPets(ownerID, analyticsTopPets)
	if err != nil {
		return Report{}, err
	}
	if top != nil {
		rpt.TopPets = top
	}
	if rpt.CategoryDistribution, err = s.Repo.CategoryDistribution(ownerID); err != nil {
		return Report{}, err
	}
	return rpt, nil
}
