package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/dates"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

// Digest содержит всё, что нужно для текста напоминания об одном хакатоне.
type Digest struct {
	Hackathon models.Hackathon
	Deadline  time.Time
	DaysLeft  int
	Status    models.HackathonStatus
}

func UrgencyLabel(daysLeft int) string {
	switch {
	case daysLeft == 0:
		return "🚨 TODAY IS THE DEADLINE!"
	case daysLeft == 1:
		return "⚠️ TOMORROW is the deadline!"
	case daysLeft >= 2 && daysLeft <= 3:
		return fmt.Sprintf("⏰ Only %d days left!", daysLeft)
	default:
		return fmt.Sprintf("📅 %d days until deadline", daysLeft)
	}
}

// MessageLines возвращает строки сообщения; пустые строки означают
// отсутствующие необязательные поля и отбрасываются в BuildMessage.
func MessageLines(d Digest) []string {
	h := d.Hackathon

	return []string{
		fmt.Sprintf("<b>🏆 %s</b>", html.EscapeString(h.Name)),
		UrgencyLabel(d.DaysLeft),
		"<b>Deadline:</b> " + dates.Format(d.Deadline),
		"<b>Status:</b> " + dates.StatusLabel(d.Status),
		optional(h.TeamName, func(team string) string {
			return "<b>Team:</b> " + html.EscapeString(team)
		}),
		optional(h.Link, func(link string) string {
			return fmt.Sprintf(`<a href="%s">🔗 Hackathon Link</a>`, html.EscapeString(link))
		}),
		optional(h.GithubLink, func(link string) string {
			return fmt.Sprintf(`<a href="%s">💻 GitHub Repo</a>`, html.EscapeString(link))
		}),
	}
}

func BuildMessage(d Digest) string {
	lines := MessageLines(d)
	kept := lines[:0]

	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

func optional(value string, format func(string) string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	return format(value)
}
