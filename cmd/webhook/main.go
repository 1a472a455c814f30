package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/cmd/webhook/app"
)

func main() {
	if err := app.NewCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
