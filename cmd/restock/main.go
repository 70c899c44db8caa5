package main

import (
	"fmt"
	"os"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
