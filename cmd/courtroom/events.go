package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/courtroom/internal/config"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/sqlite"
)

func runEvents(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := openDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := event.NewService(sqlite.NewEventRepository(db), nil).Recent(cmd.Context())
	if err != nil {
		return err
	}
	return printEvents(cmd.OutOrStdout(), events, asJSON)
}

func printEvents(out io.Writer, events []event.Event, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		for _, ev := range events {
			if err := enc.Encode(ev); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTYPE\tPAYLOAD")
	for _, ev := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", ev.ID, ev.CreatedAt.Local().Format(time.DateTime), ev.Type, ev.Payload)
	}
	return tw.Flush()
}
