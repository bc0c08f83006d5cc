package main

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/strrl/daylog/pkg/locator"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <app> <date>",
		Short: "Delete the log file of an application day",
		Args:  cobra.ExactArgs(2),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	date, err := locator.ParseDate(args[1])
	if err != nil {
		return err
	}
	r, _, err := newReader()
	if err != nil {
		return err
	}
	if err := r.DeleteLog(cmd.Context(), args[0], date); err != nil {
		return errors.Errorf("delete: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Deleted %s\n", locator.FileName(args[0], date))
	return nil
}
