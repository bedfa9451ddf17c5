// SPDX-License-Identifier: MIT

// Command lpipm generates a sparse LP test instance, assembles a feasible
// problem around it and solves it with the Mehrotra and IPF variants.
//
// Every flag can also be set through the environment as LPIPM_<FLAG>,
// with dashes replaced by underscores (LPIPM_LOG_LEVEL=debug).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
