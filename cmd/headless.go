package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/playshell/playshell/headless"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/player"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(headlessCmd)
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run only the player engine, speaking JSON lines on stdin and stdout",
	Long: `Run the player engine without a user interface.

Commands are read from stdin, one JSON object per line, for example
  {"action":"loadMedia","src":"track.mp3"}
  {"action":"play"}
Statuses are written to stdout the same way. Wait for
  {"status":"iframeReady"}
before sending commands. See "playshell schema" for every message.`,
	Example: `  printf '{"action":"loadYouTube","videoId":"dQw4w9WgXcQ"}\n' | playshell headless --backend virtual`,
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetString(key.PlayerBackend) == player.BackendMPV {
			handleErr(requireDependency(mpvDependency()))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		handleErr(headless.Run(ctx, &headless.Options{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
		}))
	},
}
