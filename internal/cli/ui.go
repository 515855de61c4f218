package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		Align(lipgloss.Center).
		Width(64).
		MarginBottom(1)

	taglineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		Align(lipgloss.Center).
		Width(64).
		MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		MarginTop(1)

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6"))
)

// DisplayBanner shows the startup banner.
func DisplayBanner() {
	banner := `
 ███████╗████████╗ ██████╗  ██████╗██╗  ██╗
 ██╔════╝╚══██╔══╝██╔═══██╗██╔════╝██║ ██╔╝
 ███████╗   ██║   ██║   ██║██║     █████╔╝
 ╚════██║   ██║   ██║   ██║██║     ██╔═██╗
 ███████║   ██║   ╚██████╔╝╚██████╗██║  ██╗
 ╚══════╝   ╚═╝    ╚═════╝  ╚═════╝╚═╝  ╚═╝
             C H A R T   P R O
`
	fmt.Print(bannerStyle.Render(banner))
	fmt.Println(taglineStyle.Render("Interactive charts and reports for VOO & JEPI"))
}

// DisplaySection prints a section heading between menu steps.
func DisplaySection(title string) {
	fmt.Println(sectionStyle.Render(title))
}

// DisplayError shows a request failure and signals the return to the menu.
func DisplayError(err error) {
	fmt.Println(errorStyle.Render("❌ " + err.Error()))
}

// DisplaySuccess shows a completed action.
func DisplaySuccess(message string) {
	fmt.Println(successStyle.Render("✅ " + message))
}

// DisplayInfo shows a neutral status line.
func DisplayInfo(message string) {
	fmt.Println(infoStyle.Render("ℹ️  " + message))
}
