// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/nodepin/nodepin/pkg/toolchain"

	"github.com/spf13/cobra"
)

func newResolveCommand(app *App) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "resolve <npm|yarn>",
		Short: "Print the effective version of a package manager",
		Long: `Print the version of a package manager that the image provides and where
it was chosen. A pinned version is printed as given. Without a pin, npm
resolves to the version bundled with Node and carries Node's source.`,
		Example: `  nodepin resolve npm --node 18.0.0
  nodepin resolve yarn --node 18.0.0 --yarn 1.22.0 --yarn-source project`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{toolchain.Npm.String(), toolchain.Yarn.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := toolchain.ParsePackageManagerKind(args[0])
			if err != nil {
				return app.fail(err)
			}
			img, _, err := app.newImage(cmd.Context(), &sel)
			if err != nil {
				return app.fail(err)
			}
			v, err := img.ResolvePackageManager(tool)
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprintln(app.stdout, v.String())
			return nil
		},
	}

	sel.register(cmd)

	return cmd
}
