// Package cmd is the playshell command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/playshell/playshell/color"
	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/icon"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/player"
	"github.com/playshell/playshell/recent"
	"github.com/playshell/playshell/style"
	"github.com/playshell/playshell/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("backend", "B", "", "Local media element: mpv or virtual")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{player.BackendMPV, player.BackendVirtual}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerBackend, rootCmd.PersistentFlags().Lookup("backend")))

	addSelectionFlags(rootCmd)
	rootCmd.Flags().StringP("link", "l", "", "Deep link to start from, e.g. http://localhost/?ytid=dQw4w9WgXcQ")
	rootCmd.MarkFlagsMutuallyExclusive("media", "embed", "link")
}

// addSelectionFlags registers --media and --embed with completion from recent media.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("media", "m", "", "Local file or URL to load")
	cmd.Flags().StringP("embed", "e", "", "Embedded video ID to load")
	cmd.MarkFlagsMutuallyExclusive("media", "embed")

	complete := func(mediaType controller.MediaType) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			entries := lo.Filter(recent.Open().SuggestMany(toComplete), func(e recent.Entry, _ int) bool {
				return e.Kind == mediaType.String()
			})
			return lo.Map(entries, func(e recent.Entry, _ int) string { return e.Ref }), cobra.ShellCompDirectiveDefault
		}
	}

	lo.Must0(cmd.RegisterFlagCompletionFunc("media", complete(controller.MediaLocal)))
	lo.Must0(cmd.RegisterFlagCompletionFunc("embed", complete(controller.MediaEmbedded)))
}

// selectionFromFlags resolves --link, --media and --embed. Without any of
// them the configured default media is selected.
func selectionFromFlags(cmd *cobra.Command) (controller.Selection, error) {
	fallback := viper.GetString(key.PlayerDefaultMedia)

	if f := cmd.Flags().Lookup("link"); f != nil && f.Changed {
		return controller.ParseLink(f.Value.String(), fallback)
	}

	if embed := lo.Must(cmd.Flags().GetString("embed")); embed != "" {
		return controller.Selection{Type: controller.MediaEmbedded, Ref: embed}, nil
	}

	if media := lo.Must(cmd.Flags().GetString("media")); media != "" {
		return controller.Selection{Type: controller.MediaLocal, Ref: media}, nil
	}

	if fallback == "" {
		return controller.Selection{}, nil
	}

	return controller.Selection{Type: controller.MediaLocal, Ref: fallback}, nil
}

var rootCmd = &cobra.Command{
	Use:   constant.Playshell,
	Short: "Control a media player from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Control a media player from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		if viper.GetString(key.PlayerBackend) == player.BackendMPV {
			handleErr(requireDependency(mpvDependency()))
		}

		selection, err := selectionFromFlags(cmd)
		handleErr(err)

		handleErr(tui.Run(&tui.Options{Initial: selection}))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
