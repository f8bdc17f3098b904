package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/adityarawat/prepometer/internal/models"
)

type TopicAddCmd struct {
	Topic   string `arg:"" optional:"" help:"Topic name. Omit for an interactive form."`
	Subject string `short:"s" help:"Subject (English|Maths|Reasoning|GK)."`
	Notes   string `short:"n" help:"Free-form notes."`
}

func (c *TopicAddCmd) Run(ctx *Context) error {
	subject := c.Subject
	topic := c.Topic
	notes := c.Notes

	if topic == "" {
		var opts []huh.Option[string]
		for _, sub := range models.Subjects {
			opts = append(opts, huh.NewOption(string(sub), string(sub)))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Subject").
					Options(opts...).
					Value(&subject),
				huh.NewInput().
					Title("Topic").
					Value(&topic).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("topic is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Notes").
					Value(&notes),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	sub, err := parseSubject(subject)
	if err != nil {
		return err
	}

	item, err := ctx.Reconciler.AddItem(models.ChecklistItem{
		Subject: sub,
		Topic:   topic,
		Notes:   notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added topic: %s / %s (ID: %s)\n", item.Subject, item.Topic, item.ID)
	return nil
}

type TopicListCmd struct {
	Subject string `short:"s" help:"Show only one subject."`
}

func (c *TopicListCmd) Run(ctx *Context) error {
	var filter models.Subject
	if c.Subject != "" {
		sub, err := parseSubject(c.Subject)
		if err != nil {
			return err
		}
		filter = sub
	}

	items := ctx.Reconciler.Checklist()
	if len(items) == 0 {
		fmt.Println("No topics found")
		return nil
	}

	for _, subject := range models.Subjects {
		if filter != "" && subject != filter {
			continue
		}
		printed := false
		for _, item := range items {
			if item.Subject != subject {
				continue
			}
			if !printed {
				fmt.Printf("%s:\n", subject)
				printed = true
			}
			fmt.Printf("  [%s] %s - %s (ID: %s)\n", statusLabel(item), item.Topic, item.Status, item.ID)
			if item.Notes != "" {
				fmt.Printf("      %s\n", item.Notes)
			}
		}
	}
	return nil
}

type TopicDoneCmd struct {
	ID string `arg:"" help:"Topic ID (from 'topic list')."`
}

func (c *TopicDoneCmd) Run(ctx *Context) error {
	recordID, err := models.ParseRecordID(c.ID)
	if err != nil {
		return err
	}
	item, err := ctx.Reconciler.UpdateItem(recordID, func(it *models.ChecklistItem) {
		it.Status = models.StatusDone
	})
	if err != nil {
		return err
	}
	fmt.Printf("Marked done: %s / %s\n", item.Subject, item.Topic)
	return nil
}

type TopicEditCmd struct {
	ID     string `arg:"" help:"Topic ID (from 'topic list')."`
	Topic  string `short:"t" help:"New topic name."`
	Status string `help:"New status (e.g. 'Not started', 'In progress', 'Done')."`
	Notes  string `short:"n" help:"New notes."`
	Clear  bool   `help:"Clear notes."`
}

func (c *TopicEditCmd) Validate() error {
	if c.Topic == "" && c.Status == "" && c.Notes == "" && !c.Clear {
		return fmt.Errorf("nothing to change")
	}
	return nil
}

func (c *TopicEditCmd) Run(ctx *Context) error {
	recordID, err := models.ParseRecordID(c.ID)
	if err != nil {
		return err
	}
	item, err := ctx.Reconciler.UpdateItem(recordID, func(it *models.ChecklistItem) {
		if c.Topic != "" {
			it.Topic = c.Topic
		}
		if c.Status != "" {
			it.Status = c.Status
		}
		if c.Notes != "" {
			it.Notes = c.Notes
		}
		if c.Clear {
			it.Notes = ""
		}
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated: %s / %s - %s\n", item.Subject, item.Topic, item.Status)
	return nil
}

type TopicDeleteCmd struct {
	ID string `arg:"" help:"Topic ID (from 'topic list')."`
}

func (c *TopicDeleteCmd) Run(ctx *Context) error {
	recordID, err := models.ParseRecordID(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Reconciler.DeleteItem(recordID); err != nil {
		return err
	}
	fmt.Println("Deleted topic")
	return nil
}
