package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/rovr/cmd/rovr/commands"
	foundationerrors "git.home.luguber.info/inful/rovr/internal/foundation/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	global := &commands.Global{Ctx: ctx, Out: os.Stdout, LogOutput: os.Stderr}

	parser, err := commands.NewParser(cli, global)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := kctx.Run(); err != nil {
		stop()
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
