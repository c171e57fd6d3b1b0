// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/boardmerge/boardmerge/cmd/boardmerge"

func main() {
	cmd.Execute()
}
