package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"

	"github.com/doeshing/leafllm-go/internal/infrastructure/cli"
	"github.com/doeshing/leafllm-go/internal/version"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := fang.Execute(ctx, root, fang.WithVersion(version.Version)); err != nil {
		os.Exit(1)
	}
	if cli.Reported() {
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("LEAFLLM_DEBUG"), "1") || strings.EqualFold(os.Getenv("LEAFLLM_DEBUG"), "true")
}
