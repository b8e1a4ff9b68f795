package cmd

import (
	"errors"

	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/open"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(linkCmd)
	addSelectionFlags(linkCmd)
	linkCmd.Flags().String("base", "", "Base URL, defaults to link.base")
	linkCmd.Flags().BoolP("open", "o", false, "Open the link with the default handler")
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print the deep link for a media selection",
	Example: `  playshell link --embed dQw4w9WgXcQ
  playshell link --media "high street tarantella.mp3" --base https://example.com/player`,
	Run: func(cmd *cobra.Command, args []string) {
		base, _ := cmd.Flags().GetString("base")
		if base == "" {
			base = viper.GetString(key.LinkBase)
		}

		selection, err := selectionFromFlags(cmd)
		handleErr(err)

		if selection.Type == controller.MediaNone {
			handleErr(errors.New("nothing selected: pass --media or --embed"))
		}

		link, err := controller.BuildLink(base, selection)
		handleErr(err)

		cmd.Println(link)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(link))
		}
	},
}
