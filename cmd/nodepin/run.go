// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nodepin/nodepin/internal/image"
	"github.com/nodepin/nodepin/pkg/platform"
	"github.com/nodepin/nodepin/pkg/types"

	"github.com/spf13/cobra"
)

type (
	// missingImageError is returned by run when a bin directory of the
	// selection does not exist.
	missingImageError struct {
		Dir string
	}

	// commandStartError is returned when the child process could not be started.
	commandStartError struct {
		Name string
		Err  error
	}
)

func (e *missingImageError) Error() string {
	return fmt.Sprintf("toolchain image directory %s does not exist", e.Dir)
}

func (e *commandStartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

func (e *commandStartError) Unwrap() error { return e.Err }

func newRunCommand(app *App) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command with a toolchain image on PATH",
		Long: `Run a command with PATH rewritten for the selected image. The command is
looked up on the rewritten PATH and its exit status becomes nodepin's.`,
		Example: `  nodepin run --node 20.11.1 -- node --version
  nodepin run --node 18.0.0 --yarn 1.22.0 -- yarn install`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, _, err := app.newImage(cmd.Context(), &sel)
			if err != nil {
				return app.fail(err)
			}
			code, err := app.runInImage(cmd.Context(), img, args)
			if err != nil {
				return app.fail(err)
			}
			if !code.IsSuccess() {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	sel.register(cmd)
	// Flags after the command name belong to the command.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// runInImage runs args[0] with the image PATH and returns its exit code.
func (a *App) runInImage(ctx context.Context, img *image.Image, args []string) (types.ExitCode, error) {
	bins, err := img.BinDirs()
	if err != nil {
		return 0, err
	}
	for _, dir := range bins {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			return 0, &missingImageError{Dir: dir}
		}
	}

	path, err := img.Path()
	if err != nil {
		return 0, err
	}

	name, err := lookPathIn(args[0], path)
	if err != nil {
		return 0, &commandStartError{Name: args[0], Err: err}
	}
	slog.Debug("running command", "command", name, "args", args[1:])

	child := exec.CommandContext(ctx, name, args[1:]...)
	child.Env = withPathEnv(os.Environ(), path)
	child.Stdin = os.Stdin
	child.Stdout = a.stdout
	child.Stderr = a.stderr

	if err := child.Run(); err != nil {
		if code, ok := types.ExitCodeOf(err); ok {
			return code, nil
		}
		return 0, &commandStartError{Name: args[0], Err: err}
	}
	return 0, nil
}

// lookPathIn finds an executable the way a shell would with PATH set to path.
// Names containing a separator are used as they are.
func lookPathIn(name, path string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return exec.LookPath(name)
	}
	for _, dir := range filepath.SplitList(path) {
		if found, err := exec.LookPath(pathCandidate(dir, name)); err == nil {
			return found, nil
		}
	}
	return "", fmt.Errorf("%w: %s", exec.ErrNotFound, name)
}

// pathCandidate joins dir and name so that the result always contains a
// separator. exec.LookPath searches the process PATH for bare names, which
// still holds the directories the image removed.
func pathCandidate(dir, name string) string {
	if dir == "" {
		dir = "."
	}
	return dir + string(filepath.Separator) + name
}

// withPathEnv returns environ with the search path variable set to path.
func withPathEnv(environ []string, path string) []string {
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if isPathKey(key) {
			continue
		}
		out = append(out, kv)
	}
	return append(out, image.PathEnvVar+"="+path)
}

func isPathKey(key string) bool {
	if runtime.GOOS == platform.Windows {
		return strings.EqualFold(key, image.PathEnvVar)
	}
	return key == image.PathEnvVar
}

