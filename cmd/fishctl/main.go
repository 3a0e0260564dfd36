// Command fishctl is the FishFarmer operator tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fishfarmer/internal/cli"
)

func main() {
	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr)
	err := cli.NewRootCmd(app).ExecuteContext(context.Background())
	_ = app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
