package ui

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/fatih/color"

	"github.com/investmateai/imctl/internal/cli/types"
)

var (
	// Tree node styles
	cityStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	propertyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
)

// RenderPropertyTree renders properties grouped by city as a tree
func RenderPropertyTree(properties []types.Property) string {
	if len(properties) == 0 {
		return keyStyle.Render("No properties found")
	}

	byCity := make(map[string][]types.Property)
	for _, p := range properties {
		city := p.City
		if city == "" {
			city = "(unknown city)"
		}
		byCity[city] = append(byCity[city], p)
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	var output string
	for i, city := range cities {
		if i > 0 {
			output += "\n"
		}
		cityTree := tree.Root(cityStyle.Render(city))
		for _, p := range byCity[city] {
			cityTree.Child(buildPropertyNode(p))
		}
		output += cityTree.String()
	}

	return output
}

// buildPropertyNode creates a tree node for a single property
func buildPropertyNode(p types.Property) *tree.Tree {
	label := fmt.Sprintf("%s %s",
		propertyStyle.Render(p.Address),
		keyStyle.Render(fmt.Sprintf("(%s)", p.PropertyType)),
	)

	node := tree.New().Root(label)
	node.Child(formatKeyValue("Price:", valueStyle.Render(FormatPrice(p.Price))))
	node.Child(formatKeyValue("Rooms:", fmt.Sprintf("%s, floor %d", formatRooms(p.Rooms), p.Floor)))

	if p.YieldPercent > 0 {
		yield := fmt.Sprintf("%.1f%%", p.YieldPercent)
		if p.RentalEstimate > 0 {
			yield += keyStyle.Render(fmt.Sprintf(" (est. rent %s/mo)", FormatPrice(p.RentalEstimate)))
		}
		node.Child(formatKeyValue("Yield:", color.GreenString(yield)))
	}

	if p.Agent != nil {
		agentInfo := p.Agent.FullName
		if p.Agent.AgencyName != "" {
			agentInfo += keyStyle.Render(" · " + p.Agent.AgencyName)
		}
		node.Child(formatKeyValue("Agent:", agentInfo))
	}

	if p.ImageURL != "" {
		node.Child(formatKeyValue("Image:", keyStyle.Render(p.ImageURL)))
	}

	return node
}

// RenderAgentList renders the agent roster as an aligned list
func RenderAgentList(agents []types.Agent) string {
	if len(agents) == 0 {
		return keyStyle.Render("No agents found")
	}

	maxNameLen := 0
	maxAgencyLen := 0
	for _, a := range agents {
		if len(a.FullName) > maxNameLen {
			maxNameLen = len(a.FullName)
		}
		if len(a.AgencyName) > maxAgencyLen {
			maxAgencyLen = len(a.AgencyName)
		}
	}

	var output string
	for _, a := range agents {
		contact := a.PhoneNumber
		if a.Email != "" {
			if contact != "" {
				contact += "  "
			}
			contact += a.Email
		}
		output += fmt.Sprintf("  • %-*s  |  %-*s  |  %s\n",
			maxNameLen, a.FullName,
			maxAgencyLen, a.AgencyName,
			keyStyle.Render(contact))
	}

	return output
}

// RenderPropertySummary renders a summary line for list output
func RenderPropertySummary(propertyCount int) string {
	label := "properties"
	if propertyCount == 1 {
		label = "property"
	}

	summary := fmt.Sprintf("Total: %s %s",
		highlightStyle.Render(strconv.Itoa(propertyCount)),
		keyStyle.Render(label),
	)

	return summaryStyle.Render(summary)
}

// FormatPrice renders a price with thousands separators
func FormatPrice(price float64) string {
	n := int64(price)
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return "₪" + s
	}

	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return "₪" + string(out)
}

// formatRooms drops the trailing .0 for whole room counts
func formatRooms(rooms float64) string {
	if rooms == float64(int(rooms)) {
		return strconv.Itoa(int(rooms))
	}
	return strconv.FormatFloat(rooms, 'f', 1, 64)
}

// formatKeyValue formats a key-value pair
func formatKeyValue(key, value string) string {
	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		value,
	)
}
