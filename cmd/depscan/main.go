package main

import (
	"context"
	"fmt"
	"os"
	"strings"
)

var version = "dev"

func versionString() string {
	if v := strings.TrimSpace(version); v != "" {
		return v
	}
	return "dev"
}

func main() {
	ctx := context.Background()
	if err := NewRoot(versionString()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
