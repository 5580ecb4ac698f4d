// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"chaoslab/internal/compiler"
	"chaoslab/internal/config"
	"chaoslab/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	opts := compiler.DefaultOptions()
	if cfg, err := config.Load(config.DefaultFile); err == nil {
		if fromConfig, err := compiler.OptionsFromConfig(cfg, nil); err == nil {
			opts = fromConfig
		}
	}

	fmt.Printf("Welcome to the Chaos Lab REPL, %s! Type :help for commands.\n", currentUser.Username)
	repl.Start(os.Stdin, os.Stdout, opts)
}
