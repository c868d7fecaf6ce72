package models

import "time"

// NoRecipientsMember подставляется в отчёт, когда у хакатона нет ни одного
// участника с настроенным чатом.
const NoRecipientsMember = "(none)"

type Outcome struct {
	Hackathon string `json:"hackathon"`
	Member    string `json:"member"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

type Report struct {
	Message            string    `json:"message"`
	HackathonsNotified int       `json:"hackathonsNotified"`
	Results            []Outcome `json:"results"`
	BotName            string    `json:"botName,omitempty"`
	Info               string    `json:"info,omitempty"`
}

func (r *Report) Succeeded() int {
	count := 0

	for _, outcome := range r.Results {
		if outcome.Success {
			count++
		}
	}

	return count
}

func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

type Trigger string

const (
	TriggerScan     Trigger = "scan"
	TriggerTargeted Trigger = "targeted"
)

func TriggerFor(hackathonID string) Trigger {
	if hackathonID == "" {
		return TriggerScan
	}

	return TriggerTargeted
}

type ReportEvent struct {
	Trigger     Trigger   `json:"trigger"`
	HackathonID string    `json:"hackathonId,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
	Report      *Report   `json:"report"`
}

type BotCheck struct {
	BotName     string `json:"botName"`
	BotUsername string `json:"botUsername"`
	Message     string `json:"message"`
}

type TestOutcome struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type TestReport struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	Results     []TestOutcome `json:"results"`
	BotUsername string        `json:"botUsername"`
}
