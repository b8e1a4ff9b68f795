package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/playshell/playshell/filesystem"
	"github.com/playshell/playshell/icon"
	"github.com/playshell/playshell/recent"
	"github.com/playshell/playshell/util"
	"github.com/playshell/playshell/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

func removeAll(location func() string) func() error {
	return func() error {
		err := filesystem.API().RemoveAll(location())
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
}

var clearTargets = []clearTarget{
	{"recent media", "recent", mo.Some("r"), func() error { return recent.Open().Clear() }},
	{"cache directory", "cache", mo.Some("c"), removeAll(where.Cache)},
	{"logs", "logs", mo.Some("l"), removeAll(where.Logs)},
	{"temporary files", "temp", mo.None[string](), removeAll(where.Temp)},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached and temporary files",
	Run: func(cmd *cobra.Command, args []string) {
		targets := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			names := lo.Map(targets, func(t clearTarget, _ int) string { return t.name })

			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Clear %s?", strings.Join(names, ", ")),
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		for _, target := range targets {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := target.clear()
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}
