// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/nodepin/nodepin/cmd/nodepin"

func main() {
	cmd.Execute()
}
