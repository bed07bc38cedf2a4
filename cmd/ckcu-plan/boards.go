package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ht32-hal-go/services/config"
)

func newBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List the embedded board profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, b := range config.Boards() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), b); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
