package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Tests the connection to the configured API server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	serverURL := getServerURL()

	err := newAPIClient().Health(cmd.Context())
	if isJSON() {
		resp := map[string]any{"server": serverURL, "reachable": err == nil}
		if err != nil {
			resp["error"] = err.Error()
		}
		return printJSON(w, resp)
	}

	if _, werr := fmt.Fprintf(w, "Server:  %s\n", serverURL); werr != nil {
		return werr
	}
	if err != nil {
		_, werr := fmt.Fprintf(w, "Status:  ✗ cannot reach server (%v)\n", err)
		return werr
	}
	_, werr := fmt.Fprintln(w, "Status:  ✓ connected")
	return werr
}
