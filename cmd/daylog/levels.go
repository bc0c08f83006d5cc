package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Print the level names in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := newReader()
			if err != nil {
				return err
			}
			for _, l := range r.AvailableLevels() {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
}
