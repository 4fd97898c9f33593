package main

import (
	"fmt"
	"os"

	"github.com/MasCreaThor/plataforma/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		fmt.Fprintf(os.Stderr, "plataforma: %v\n", err)
		os.Exit(1)
	}
}
