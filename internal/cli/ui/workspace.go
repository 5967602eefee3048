package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
)

var (
	slugStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// RenderWorkspaceList renders workspaces as a list keyed by slug. The slug
// marked current gets a highlight marker.
func RenderWorkspaceList(workspaces []anythingllm.Workspace, currentSlug string) string {
	if len(workspaces) == 0 {
		return keyStyle.Render("No workspaces found")
	}

	var b strings.Builder
	for _, ws := range workspaces {
		marker := "  "
		slug := slugStyle.Render(ws.Slug)
		if ws.Slug == currentSlug {
			marker = highlightStyle.Render("* ")
			slug = highlightStyle.Render(ws.Slug)
		}
		b.WriteString(marker)
		b.WriteString(slug)
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("    %s %s\n", keyStyle.Render("name:"), valueStyle.Render(ws.Name)))
		if ws.CreatedAt != "" {
			b.WriteString(fmt.Sprintf("    %s %s\n", keyStyle.Render("created:"), valueStyle.Render(ws.CreatedAt)))
		}
	}

	b.WriteString("\n")
	b.WriteString(keyStyle.Render(fmt.Sprintf("%d workspace(s)", len(workspaces))))
	return b.String()
}

// RenderUserList renders backend accounts.
func RenderUserList(users []anythingllm.User) string {
	if len(users) == 0 {
		return keyStyle.Render("No users found")
	}

	var b strings.Builder
	for _, u := range users {
		name := slugStyle.Render(u.Username)
		if u.Role == "admin" {
			name = highlightStyle.Render(u.Username)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", name, keyStyle.Render("("+u.Role+")")))
	}

	b.WriteString("\n")
	b.WriteString(keyStyle.Render(fmt.Sprintf("%d user(s)", len(users))))
	return b.String()
}
