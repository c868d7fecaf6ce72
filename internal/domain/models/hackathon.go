package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type ResourceType string

const (
	ResourceLink       ResourceType = "link"
	ResourceDocument   ResourceType = "document"
	ResourceDesign     ResourceType = "design"
	ResourceCode       ResourceType = "code"
	ResourceSubmission ResourceType = "submission"
	ResourceOther      ResourceType = "other"
)

type Resource struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	URL     string       `json:"url"`
	Type    ResourceType `json:"type"`
	AddedAt string       `json:"addedAt"`
}

// Hackathon хранится в том же JSON-формате, что и у веб-интерфейса:
// даты остаются строками ISO-8601 и разбираются только при расчётах.
type Hackathon struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	GithubLink  string     `json:"githubLink"`
	Deadline    string     `json:"deadline"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	TeamName    string     `json:"teamName"`
	MemberIDs   []string   `json:"memberIds"`
	Resources   []Resource `json:"resources"`
	Tags        []string   `json:"tags"`
	Priority    Priority   `json:"priority"`
	Notes       string     `json:"notes"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

type HackathonStatus string

const (
	StatusUpcoming  HackathonStatus = "upcoming"
	StatusOngoing   HackathonStatus = "ongoing"
	StatusCompleted HackathonStatus = "completed"
)
