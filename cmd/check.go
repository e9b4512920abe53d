package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/icon"
	"github.com/anisan-cli/mirai/player"
	"github.com/anisan-cli/mirai/style"
	"github.com/charmbracelet/lipgloss"
)

// CheckDependencies exits when the binary of p is not on PATH.
func CheckDependencies(p *player.Player) {
	if _, err := exec.LookPath(p.Binary()); err != nil {
		printMissingDependencyError(p.Name())
		os.Exit(1)
	}
}

func installHint(dep string) string {
	switch runtime.GOOS {
	case "darwin":
		if dep == "iina" {
			return "brew install --cask iina"
		}
		return "brew install " + dep
	case "linux":
		return "sudo apt install " + dep
	case "windows":
		return "scoop install " + dep
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("The player %q was not found in your PATH.", dep)

	suggestion := ""
	if hint := installHint(dep); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.HiPurple).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
