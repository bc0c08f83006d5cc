package main

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <app>",
		Short: "List the log files of an application",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	r, _, err := newReader()
	if err != nil {
		return err
	}
	files, err := r.ListLogFiles(cmd.Context(), args[0])
	if err != nil {
		return errors.Errorf("list: %w", err)
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
