// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBinsCommand(app *App) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "bins",
		Short: "Print the bin directories of a toolchain image",
		Long: `Print the bin directories of the selection, one per line, in the order
they are put on PATH: npm, Yarn, then Node.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			img, _, err := app.newImage(cmd.Context(), &sel)
			if err != nil {
				return app.fail(err)
			}
			bins, err := img.BinDirs()
			if err != nil {
				return app.fail(err)
			}
			for _, dir := range bins {
				fmt.Fprintln(app.stdout, dir)
			}
			return nil
		},
	}

	sel.register(cmd)

	return cmd
}
