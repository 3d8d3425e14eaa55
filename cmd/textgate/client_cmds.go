package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"textgate/internal/client"
)

const envServer = "TEXTGATE_SERVER"

func defaultServerURL() string {
	if v := os.Getenv(envServer); v != "" {
		return v
	}
	return "http://127.0.0.1:5000"
}

// newClientCmds returns the subcommands that talk to a running server.
func newClientCmds() []*cobra.Command {
	var (
		server  string
		timeout time.Duration
	)
	addFlags := func(cmd *cobra.Command) *cobra.Command {
		cmd.Flags().StringVar(&server, "server", defaultServerURL(), "Server base URL (env "+envServer+")")
		cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")
		return cmd
	}
	newClient := func() *client.Client { return client.New(server, timeout) }

	generate := addFlags(&cobra.Command{
		Use:     "generate <prompt...>",
		Short:   "Generate text for a prompt",
		Example: "  textgate generate why is the sky blue",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newClient().Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	})
	health := addFlags(&cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newClient().Health(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), h)
		},
	})
	status := addFlags(&cobra.Command{
		Use:   "status",
		Short: "Show detailed model status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newClient().Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	})
	reload := addFlags(&cobra.Command{
		Use:   "reload",
		Short: "Reload the model on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newClient().Reload(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), r); err != nil {
				return err
			}
			if !r.Success {
				return fmt.Errorf("reload failed: %s", r.Error)
			}
			return nil
		},
	})
	return []*cobra.Command{generate, health, status, reload}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
