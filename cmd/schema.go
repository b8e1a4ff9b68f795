package cmd

import (
	"encoding/json"

	"github.com/playshell/playshell/protocol"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolP("status", "s", false, "Print the schema of statuses instead of commands")
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the messages exchanged with the engine",
	Run: func(cmd *cobra.Command, args []string) {
		schema := protocol.CommandSchema()
		if lo.Must(cmd.Flags().GetBool("status")) {
			schema = protocol.StatusSchema()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
