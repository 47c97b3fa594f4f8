package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "courtroom",
	Short: "Court room escalation game server",
	Long: `courtroom serves the court room escalation game, the escape room stages,
the pre-lab questionnaire, an event log and saved HTML outputs over HTTP,
and the same operations as MCP tools over HTTP or stdio.

Without a subcommand it runs the server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP or stdio server",
	Long: `Run the server. Configuration comes from the optional YAML file named by
COURTROOM_CONFIG_PATH and COURTROOM_* environment variables.

Set COURTROOM_TRANSPORT_MODE=stdio to serve MCP on stdin/stdout.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the most recent events from the database",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play an unattended court session and print the feed",
	Long: `Simulate runs one court session locally with compressed timings and
prints every feed message as it is posted. Nothing is ever fixed, so tasks
escalate to court.

With --server the session's events are also posted to that server's /events.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	eventsCmd.Flags().Bool("json", false, "print events as JSON lines")

	simulateCmd.Flags().Duration("threshold", defaultSimThreshold, "time until an open task turns urgent")
	simulateCmd.Flags().Duration("tick", defaultSimTick, "escalation clock period")
	simulateCmd.Flags().Duration("message-min", defaultSimMessageMin, "minimum delay between generated messages")
	simulateCmd.Flags().Duration("message-max", defaultSimMessageMax, "maximum delay between generated messages")
	simulateCmd.Flags().Duration("duration", defaultSimDuration, "how long to run")
	simulateCmd.Flags().String("server", "", "base URL of a courtroom server to post events to")
	simulateCmd.Flags().Uint64("seed", 0, "message generator seed (0 picks one at random)")

	rootCmd.AddCommand(serveCmd, eventsCmd, simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
