package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/client"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/config"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

var (
	backendURL string
	configDir  string
	project    string
	location   string
	engineID   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asx",
		Short: "Command line explorer for Gemini Enterprise and NotebookLM Enterprise APIs",
	}

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", common.Getenv("ASX_BACKEND", "http://localhost:8000"), "backend base URL")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&project, "project", "", "Google Cloud project number")
	rootCmd.PersistentFlags().StringVar(&location, "location", "", "location (us, eu, global)")
	rootCmd.PersistentFlags().StringVar(&engineID, "engine", "", "engine id")

	rootCmd.AddCommand(configureCmd())
	rootCmd.AddCommand(agentsCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(converseCmd())
	rootCmd.AddCommand(streamCmd())
	rootCmd.AddCommand(notebooksCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func backend() *client.Client {
	return client.New(backendURL)
}

// resolved merges flags over the persisted configuration.
func resolved() (config.Configuration, error) {
	store, err := config.NewFileStore(configDir)
	if err != nil {
		return config.Configuration{}, err
	}

	saved, err := store.Load()
	if err != nil {
		return config.Configuration{}, err
	}

	if project != "" {
		saved.ProjectNumber = project
	}
	if location != "" {
		saved.Location = location
	}
	if engineID != "" {
		saved.EngineID = engineID
	}
	if saved.Location == "" {
		saved.Location = "us"
	}

	return saved, nil
}

func tenant() (client.Tenant, config.Configuration, error) {
	saved, err := resolved()
	if err != nil {
		return client.Tenant{}, saved, err
	}
	if saved.ProjectNumber == "" {
		return client.Tenant{}, saved, fmt.Errorf("project number not set, pass --project or run: asx configure")
	}
	return client.Tenant{ProjectNumber: saved.ProjectNumber, Location: saved.Location}, saved, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Persist project, location and engine for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewFileStore(configDir)
			if err != nil {
				return err
			}

			saved, err := resolved()
			if err != nil {
				return err
			}
			if err := saved.Validate(); err != nil {
				return err
			}

			if err := store.Save(saved); err != nil {
				return err
			}
			fmt.Printf("Saved configuration to %s\n", store.Path())
			return nil
		},
	}
}

func agentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Inspect engines and agents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the engines visible to the tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := tenant()
			if err != nil {
				return err
			}

			resp, err := backend().ListAgents(cmd.Context(), t)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get [engine-id]",
		Short: "Show one engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := tenant()
			if err != nil {
				return err
			}

			resp, err := backend().GetAgent(cmd.Context(), t, args[0])
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	})

	return cmd
}

func searchCmd() *cobra.Command {
	var pageSize int
	var noSpellCorrection bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run an enterprise search query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, saved, err := tenant()
			if err != nil {
				return err
			}
			if saved.EngineID == "" {
				return fmt.Errorf("engine id not set, pass --engine or run: asx configure")
			}

			spellCorrection := !noSpellCorrection
			resp, err := backend().Search(cmd.Context(), models.SearchRequest{
				Query:           strings.Join(args, " "),
				PageSize:        pageSize,
				SpellCorrection: &spellCorrection,
				ProjectNumber:   t.ProjectNumber,
				Location:        t.Location,
				EngineID:        saved.EngineID,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "number of results (default: backend default)")
	cmd.Flags().BoolVar(&noSpellCorrection, "no-spell-correction", false, "disable spell correction")
	return cmd
}

func converseCmd() *cobra.Command {
	var conversationID string

	cmd := &cobra.Command{
		Use:   "converse [query]",
		Short: "Run a conversational query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, saved, err := tenant()
			if err != nil {
				return err
			}
			if saved.EngineID == "" {
				return fmt.Errorf("engine id not set, pass --engine or run: asx configure")
			}

			resp, err := backend().Converse(cmd.Context(), models.ConversationRequest{
				Query:          strings.Join(args, " "),
				ConversationID: conversationID,
				ProjectNumber:  t.ProjectNumber,
				Location:       t.Location,
				EngineID:       saved.EngineID,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&conversationID, "conversation", "", "conversation id to continue")
	return cmd
}

func streamCmd() *cobra.Command {
	var conversationID string

	cmd := &cobra.Command{
		Use:   "stream [query]",
		Short: "Run a conversational query and stream the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, saved, err := tenant()
			if err != nil {
				return err
			}
			if saved.EngineID == "" {
				return fmt.Errorf("engine id not set, pass --engine or run: asx configure")
			}

			stream, err := backend().ConverseStream(cmd.Context(), models.ConversationRequest{
				Query:          strings.Join(args, " "),
				ConversationID: conversationID,
				ProjectNumber:  t.ProjectNumber,
				Location:       t.Location,
				EngineID:       saved.EngineID,
			})
			if err != nil {
				return err
			}
			defer stream.Close()

			for {
				chunk, err := stream.Recv()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}

				switch chunk.Type {
				case "chunk":
					fmt.Println(chunk.Text)
					if chunk.ConversationID != "" {
						fmt.Printf("(conversation: %s)\n", chunk.ConversationID)
					}
				case "error":
					return fmt.Errorf("stream failed: %s", chunk.Error)
				case "done":
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&conversationID, "conversation", "", "conversation id to continue")
	return cmd
}

func notebooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Manage NotebookLM Enterprise notebooks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recently viewed notebooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := tenant()
			if err != nil {
				return err
			}

			resp, err := backend().ListNotebooks(cmd.Context(), t, 0)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create [title]",
		Short: "Create a notebook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := tenant()
			if err != nil {
				return err
			}

			resp, err := backend().CreateNotebook(cmd.Context(), models.NotebookCreateRequest{
				Title:         strings.Join(args, " "),
				ProjectNumber: t.ProjectNumber,
				Location:      t.Location,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name...]",
		Short: "Delete notebooks by resource name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := tenant()
			if err != nil {
				return err
			}

			if err := backend().BatchDeleteNotebooks(cmd.Context(), models.NotebookBatchDeleteRequest{
				Names:         args,
				ProjectNumber: t.ProjectNumber,
				Location:      t.Location,
			}); err != nil {
				return err
			}
			fmt.Printf("Deleted %d notebook(s)\n", len(args))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "url [notebook-id]",
		Short: "Show the browser URL of a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := tenant()
			if err != nil {
				return err
			}

			resp, err := backend().NotebookURL(cmd.Context(), t, args[0], true)
			if err != nil {
				return err
			}
			fmt.Println(resp.URL)
			return nil
		},
	})

	cmd.AddCommand(uploadCmd())

	return cmd
}

func uploadCmd() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload [notebook-id] [file]",
		Short: "Upload a file as a notebook source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := tenant()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			fileName := args[1]
			if idx := strings.LastIndexByte(fileName, '/'); idx >= 0 {
				fileName = fileName[idx+1:]
			}

			resp, err := backend().UploadSource(cmd.Context(), t, args[0], fileName, contentType, data)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "MIME type (default: derived from file name)")
	return cmd
}
