package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/investmateai/imctl/internal/cli/types"
)

// RenderInsights renders the dashboard analytics payload as a tree
func RenderInsights(insights *types.ChatInsights) string {
	root := tree.Root(cityStyle.Render("Chat Insights"))

	questions := tree.New().Root("Top Questions")
	if len(insights.TopQuestions) == 0 {
		questions.Child(keyStyle.Render("(none yet)"))
	}
	for _, q := range insights.TopQuestions {
		questions.Child(fmt.Sprintf("%s %s",
			valueStyle.Render(q.Question),
			keyStyle.Render(fmt.Sprintf("×%d", q.Count))))
	}
	root.Child(questions)

	hours := tree.New().Root("Peak Hours")
	if len(insights.PeakHours) == 0 {
		hours.Child(keyStyle.Render("(none yet)"))
	}
	for _, h := range insights.PeakHours {
		hours.Child(fmt.Sprintf("%02d:00 %s",
			h.Hour,
			keyStyle.Render(fmt.Sprintf("%d chats", h.Count))))
	}
	root.Child(hours)

	popular := tree.New().Root("Popular Properties")
	if len(insights.PopularProperties) == 0 {
		popular.Child(keyStyle.Render("(none yet)"))
	}
	for _, p := range insights.PopularProperties {
		popular.Child(fmt.Sprintf("%s, %s %s",
			propertyStyle.Render(p.Address),
			p.City,
			keyStyle.Render(fmt.Sprintf("×%d", p.Count))))
	}
	root.Child(popular)

	if len(insights.GPTRecommendations) > 0 {
		recs := tree.New().Root("Recommendations")
		for _, r := range insights.GPTRecommendations {
			recs.Child(valueStyle.Render(r))
		}
		root.Child(recs)
	}

	return root.String()
}
