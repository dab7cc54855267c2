// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/devnode/anvil/cmd/anvil"

func main() {
	cmd.Execute()
}
