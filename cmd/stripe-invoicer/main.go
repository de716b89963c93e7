package main

import (
	"fmt"
	"os"

	"github.com/rezonia/stripe-invoicer/cmd/stripe-invoicer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
