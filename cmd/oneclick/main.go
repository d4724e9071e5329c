package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/oneclick/internal/cli"
)

func main() {
	err := cli.NewRootCommand().ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "oneclick:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
