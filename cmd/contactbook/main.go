package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/contactbook-backend/internal/app"
	"github.com/yungbote/contactbook-backend/internal/platform/shutdown"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())

	runErr := a.Run(ctx)
	stop()
	a.Close()
	if runErr != nil {
		fmt.Printf("server exited: %v\n", runErr)
		os.Exit(1)
	}
}
