package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/portfolio-hub/portfolio-backend/internal/dashboard"
	"github.com/portfolio-hub/portfolio-backend/internal/dashboard/client"
	msgdomain "github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
	projdomain "github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
	unreadStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// maxTags is how many tags the project table shows before "+N".
const maxTags = 3

func renderMessageTable(msgs []msgdomain.Message) string {
	if len(msgs) == 0 {
		return "No messages found."
	}
	rows := make([][]string, len(msgs))
	unread := make(map[int]bool, len(msgs))
	for i, m := range msgs {
		status := "read"
		if !m.Read {
			status = "unread"
			unread[i] = true
		}
		rows[i] = []string{m.ID, m.Name, m.Email, truncate(m.Subject, 30), status, shortDate(m.CreatedAt)}
	}
	return renderTable([]string{"ID", "Name", "Email", "Subject", "Status", "Received"}, rows, func(row int) lipgloss.Style {
		if unread[row] {
			return unreadStyle
		}
		return cellStyle
	})
}

func renderProjectTable(projects []projdomain.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{p.ID, p.Title, p.Category, tagSummary(p.Tags), shortDate(p.CreatedAt)}
	}
	return renderTable([]string{"ID", "Title", "Category", "Tags", "Created"}, rows, nil)
}

func renderTable(headers []string, rows [][]string, rowStyle func(row int) lipgloss.Style) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			if rowStyle != nil {
				return rowStyle(row)
			}
			return cellStyle
		})
	return t.Render()
}

func renderMessage(m msgdomain.Message) string {
	var b strings.Builder
	subject := m.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	b.WriteString(titleStyle.Render(subject) + "\n")
	field(&b, "From", fmt.Sprintf("%s <%s>", m.Name, m.Email))
	field(&b, "Received", m.CreatedAt)
	field(&b, "Status", map[bool]string{true: "read", false: "unread"}[m.Read])
	b.WriteString("\n" + m.Message + "\n")
	return b.String()
}

func renderStats(s client.Stats) string {
	var b strings.Builder
	field(&b, "Projects", strconv.Itoa(s.Projects))
	field(&b, "Messages", strconv.Itoa(s.Messages))
	field(&b, "Unread", strconv.Itoa(s.Unread))
	if s.Degraded {
		b.WriteString(errorStyle.Render("document store unavailable, totals may be incomplete") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNotification(n dashboard.Notification) string {
	text := n.Title
	if n.Message != "" {
		text += ": " + n.Message
	}
	if n.Level == dashboard.LevelError {
		return errorStyle.Render(text)
	}
	return successStyle.Render(text)
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label+":") + " " + value + "\n")
}

func tagSummary(tags []string) string {
	if len(tags) <= maxTags {
		return strings.Join(tags, ", ")
	}
	return strings.Join(tags[:maxTags], ", ") + fmt.Sprintf(" +%d", len(tags)-maxTags)
}

// shortDate keeps the date part of an ISO timestamp.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
