package cli

import (
	"context"
	"fmt"
)

type ImportCmd struct{}

func (c *ImportCmd) Run(ctx *Context) error {
	if _, err := ctx.requireSession(); err != nil {
		return err
	}

	n, err := ctx.Reconciler.ImportAll(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d records to your prep vault\n", n)
	fmt.Println("Note: importing again will create duplicate remote rows.")
	return nil
}

type PullCmd struct{}

func (c *PullCmd) Run(ctx *Context) error {
	if _, err := ctx.requireSession(); err != nil {
		return err
	}

	if err := ctx.Reconciler.Pull(context.Background()); err != nil {
		return err
	}

	items := ctx.Reconciler.Checklist()
	entries := ctx.Reconciler.DailyLog()
	fmt.Printf("Pulled remote state: %d topics, %d log entries\n", len(items), len(entries))
	return nil
}
