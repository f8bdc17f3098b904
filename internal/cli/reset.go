package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/adityarawat/prepometer/internal/ident"
	"github.com/adityarawat/prepometer/internal/models"
)

type ResetCmd struct {
	Force bool `short:"f" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Force {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Reset all local data?").
					Description("The checklist is reseeded with the default topics and all daily logs are deleted. Remote data is not touched.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := ctx.Store.SaveChecklist(models.DefaultChecklist(ident.NewTemporary)); err != nil {
		return err
	}
	if err := ctx.Store.SaveDailyLog([]models.DailyLogEntry{}); err != nil {
		return err
	}

	fmt.Println("Local data reset")
	return nil
}
