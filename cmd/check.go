package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/playshell/playshell/color"
	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/icon"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/style"
	"github.com/playshell/playshell/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dependency is an external program playshell drives.
type dependency struct {
	name       string
	executable string
	minVersion string
	install    map[string]string
}

func mpvDependency() dependency {
	return dependency{
		name:       "mpv",
		executable: viper.GetString(key.PlayerMPV),
		minVersion: "0.33.0",
		install: map[string]string{
			constant.Darwin:  "brew install mpv",
			constant.Linux:   "sudo apt install mpv",
			constant.Windows: "scoop install mpv",
		},
	}
}

func resolverDependency() dependency {
	return dependency{
		name:       "yt-dlp",
		executable: viper.GetString(key.EmbedResolver),
		install: map[string]string{
			constant.Darwin:  "brew install yt-dlp",
			constant.Linux:   "python3 -m pip install -U yt-dlp",
			constant.Windows: "scoop install yt-dlp",
		},
	}
}

// probe returns the version reported by the dependency.
func (d dependency) probe() (string, error) {
	path, err := exec.LookPath(d.executable)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", d.executable, err)
	}

	v, ok := version.Extract(string(out))
	if !ok {
		return "unknown", nil
	}

	return v, nil
}

// requireDependency prints installation hints and fails when d is missing.
func requireDependency(d dependency) error {
	if _, err := exec.LookPath(d.executable); err != nil {
		printMissingDependency(d)
		return fmt.Errorf("%s not found", d.executable)
	}
	return nil
}

func printMissingDependency(d dependency) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("%s was not found in your PATH.", d.executable))

	var suggestion string
	if installCmd, ok := d.install[runtime.GOOS]; ok {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, suggestion)))
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the external programs used for playback",
	Run: func(cmd *cobra.Command, args []string) {
		deps := []dependency{mpvDependency()}
		if viper.GetString(key.EmbedResolver) != "" {
			deps = append(deps, resolverDependency())
		}

		var failed bool
		for _, d := range deps {
			v, err := d.probe()
			switch {
			case err != nil:
				failed = true
				cmd.Printf("%s %s: %v\n", style.Fg(color.Red)(icon.Get(icon.Fail)), d.name, err)
			case d.minVersion != "" && v != "unknown" && !version.AtLeast(v, d.minVersion):
				failed = true
				cmd.Printf("%s %s %s is older than %s\n", style.Fg(color.Yellow)(icon.Get(icon.Fail)), d.name, v, d.minVersion)
			default:
				cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), d.name, style.Faint(v))
			}
		}

		if failed {
			handleErr(fmt.Errorf("some dependencies are missing or outdated"))
		}
	},
}
