// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"nodepin": Main,
	}))
}

// TestCLI runs the testscript scripts in testdata against an isolated
// nodepin home with node 18.0.0, npm 9.8.1 and yarn 1.22.0 installed.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			home := filepath.Join(env.WorkDir, ".nodepin")
			env.Setenv("NODEPIN_HOME", home)
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, "config"))
			env.Setenv("APPDATA", filepath.Join(env.WorkDir, "config"))
			return installFixtureHome(home)
		},
		ContinueOnError: true,
	})
}

func installFixtureHome(home string) error {
	files := map[string]string{
		filepath.Join("tools", "image", "node", "18.0.0", "bin", "node"): "#!/bin/sh\necho \"node 18.0.0 $*\"\n",
		filepath.Join("tools", "image", "node", "18.0.0", "bin", "fail"): "#!/bin/sh\nexit 3\n",
		filepath.Join("tools", "image", "npm", "9.8.1", "bin", "npm"):    "#!/bin/sh\necho \"npm 9.8.1\"\n",
		filepath.Join("tools", "image", "yarn", "1.22.0", "bin", "yarn"): "#!/bin/sh\necho \"yarn 1.22.0\"\n",
		filepath.Join("tools", "inventory", "node", "node-v18.0.0-npm"):  "8.6.0\n",
		filepath.Join("shim", "node"):                                    "#!/bin/sh\necho shim\n",
	}
	for rel, content := range files {
		path := filepath.Join(home, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
			return err
		}
	}
	return nil
}
