// Command server runs the name matching HTTP service.
//
// Flags:
//
//	--env-help    print the supported environment variables and exit
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/namematch-backend/internal/app"
	"github.com/heartmarshall/namematch-backend/internal/config"
)

func main() {
	envHelp := flag.Bool("env-help", false, "print the supported environment variables and exit")
	flag.Parse()

	if *envHelp {
		config.Usage(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
