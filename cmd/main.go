package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostafen/meshcheck/cmd/cmd"
	"github.com/ostafen/meshcheck/internal/env"
)

func main() {
	PrintLogo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func PrintLogo() {
	fmt.Println("                     _          _               _    ")
	fmt.Println(" _ __ ___   ___  ___| |__   ___| |__   ___  ___| | __")
	fmt.Println("| '_ ` _ \\ / _ \\/ __| '_ \\ / __| '_ \\ / _ \\/ __| |/ /")
	fmt.Println("| | | | | |  __/\\__ \\ | | | (__| | | |  __/ (__|   < ")
	fmt.Println("|_| |_| |_|\\___||___/_| |_|\\___|_| |_|\\___|\\___|_|\\_\\")
	fmt.Println()
	fmt.Println("3D model validation and scanning tool")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
