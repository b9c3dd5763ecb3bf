package http

// ActivityItem is one value of the GET /activities object, keyed by name.
type ActivityItem struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type ActivitiesResponse map[string]ActivityItem
