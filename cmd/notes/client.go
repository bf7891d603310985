package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sir_venger/notes_lite/pkg/notesclient"
	"github.com/spf13/cobra"
)

const defaultServer = "http://127.0.0.1:8000"

var serverURL string

func newClient() notesclient.Client {
	return notesclient.New(serverURL)
}

// textArg берёт текст из второго аргумента или, если его нет, из stdin.
func textArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := newClient().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all notes as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := newClient().List(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	},
}

var createCmd = &cobra.Command{
	Use:   "create NAME [TEXT]",
	Short: "Create a note (text from stdin when omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(cmd, args)
		if err != nil {
			return err
		}
		return newClient().Create(cmd.Context(), args[0], text)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update NAME [TEXT]",
	Short: "Replace the text of an existing note (text from stdin when omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(cmd, args)
		if err != nil {
			return err
		}
		return newClient().Update(cmd.Context(), args[0], text)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().Delete(cmd.Context(), args[0])
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up and print storage stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok=%t notes=%d total_bytes=%d\n", h.OK, h.Notes, h.TotalBytes)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{getCmd, listCmd, createCmd, updateCmd, deleteCmd, healthCmd} {
		c.Flags().StringVar(&serverURL, "server", envOr("NOTES_SERVER", defaultServer), "notes server base URL")
		rootCmd.AddCommand(c)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
