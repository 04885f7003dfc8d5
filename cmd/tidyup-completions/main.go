package main

import (
	"fmt"
	"os"

	tidyup "github.com/arthur-debert/tidyup/cmd/tidyup"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}

	shell := os.Args[1]
	if err := tidyup.GenCompletion(tidyup.NewRootCmd(), os.Stdout, shell); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", shell, err)
		os.Exit(1)
	}
}
