package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	tidyup "github.com/arthur-debert/tidyup/cmd/tidyup"
	"github.com/arthur-debert/tidyup/internal/version"
)

func main() {
	rootCmd := tidyup.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TIDYUP",
		Section: "1",
		Source:  "tidyup " + version.Version,
		Manual:  "tidyup manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
