package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/pkg/pagination"
)

func newHistoryCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review recorded submissions",
	}

	cmd.AddCommand(newHistoryListCmd(current), newHistoryShowCmd(current))
	return cmd
}

func newHistoryListCmd(current func() *app) *cobra.Command {
	var (
		status, prompt string
		page           pagination.PageRequest
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			page.Normalize(a.cfg.API.Pagination)

			filters := history.Filters{
				Status: lo.EmptyableToPtr(status),
				Prompt: lo.EmptyableToPtr(prompt),
			}
			result := a.domain.History.List(cmd.Context(), page, filters)
			if done, err := a.out.value(result); done {
				return err
			}
			for _, e := range result.Data {
				text := ""
				if e.Prompt != nil {
					text = firstLine(*e.Prompt, 50)
				}
				a.out.line("%s  %s  %-4s %s",
					a.out.dim(e.ID.String()),
					e.Timestamp.Format(time.DateTime),
					a.out.status(e.Status),
					text,
				)
			}
			a.out.line("%s", a.out.dim(fmt.Sprintf("page %d of %d, %d entries", result.Page, result.TotalPages, result.Total)))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&status, "status", "", "filter by status (OK or FAIL)")
	flags.StringVar(&prompt, "prompt", "", "filter by prompt substring")
	flags.IntVar(&page.Page, "page", 1, "page number")
	flags.IntVar(&page.PageSize, "page-size", 0, "page size")

	return cmd
}

func newHistoryShowCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one history entry with its response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", history.ErrNotFound, args[0])
			}

			e, err := a.domain.History.Find(cmd.Context(), id)
			if err != nil {
				return err
			}

			if done, err := a.out.value(e); done {
				return err
			}
			a.out.field("id", e.ID)
			a.out.field("time", e.Timestamp.Format(time.DateTime))
			a.out.field("status", a.out.status(e.Status))
			if e.Prompt != nil {
				a.out.field("prompt", *e.Prompt)
			}
			if e.ImagePath != nil {
				a.out.field("image", *e.ImagePath)
			}
			a.out.line("")
			return a.out.document(e.Response)
		},
	}
}
