package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)
)

const bannerText = `                      _
 _ __ ___  __ _  ___| |_
| '__/ _ \/ _` + "`" + ` |/ __| __|
| | |  __/ (_| | (__| |_
|_|  \___|\__,_|\___|\__|
                  _
  __ _ _ __   __ _| |_   _ _______ _ __
 / _` + "`" + ` | '_ \ / _` + "`" + ` | | | | |_  / _ \ '__|
| (_| | | | | (_| | | |_| |/ /  __/ |
 \__,_|_| |_|\__,_|_|\__, /___\___|_|
                     |___/`

func printBanner() {
	fmt.Println(bannerStyle.Render(bannerText))
	fmt.Println()
}

func printInputs(root, pattern, ignore, testPattern string) {
	fmt.Printf("%s %s\n", labelStyle.Render("Analyzing:"), root)
	fmt.Printf("%s %s\n", labelStyle.Render("Scan:     "), pattern)
	fmt.Printf("%s %s\n", labelStyle.Render("Ignore:   "), ignore)
	fmt.Printf("%s %s\n", labelStyle.Render("Test:     "), testPattern)
	fmt.Println()
}

func printSection(title, body string) {
	fmt.Println(headerStyle.Render("=== " + title + " ==="))
	fmt.Println(summaryStyle.Render(body))
	fmt.Println()
}
