package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptbench/internal/prompts"
	"github.com/JaimeStill/promptbench/pkg/pagination"
)

func newPromptsCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage saved prompts",
	}

	cmd.AddCommand(
		newPromptsListCmd(current),
		newPromptsSaveCmd(current),
		newPromptsShowCmd(current),
	)

	return cmd
}

func newPromptsListCmd(current func() *app) *cobra.Command {
	var (
		name, content string
		page          pagination.PageRequest
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved prompts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			page.Normalize(a.cfg.API.Pagination)

			filters := prompts.Filters{
				Name:    lo.EmptyableToPtr(name),
				Content: lo.EmptyableToPtr(content),
			}
			result := a.domain.Prompts.Search(cmd.Context(), page, filters)
			if done, err := a.out.value(result); done {
				return err
			}
			for _, p := range result.Data {
				a.out.line("%s  %-12s %s", a.out.dim(p.ID.String()), p.Name, firstLine(p.Content, 60))
			}
			a.out.line("%s", a.out.dim(fmt.Sprintf("page %d of %d, %d prompts", result.Page, result.TotalPages, result.Total)))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "filter by name substring")
	flags.StringVar(&content, "content", "", "filter by content substring")
	flags.IntVar(&page.Page, "page", 1, "page number")
	flags.IntVar(&page.PageSize, "page-size", 0, "page size")

	return cmd
}

func newPromptsSaveCmd(current func() *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save [content]",
		Short: "Save a prompt under the next \"Prompt #N\" name",
		Long:  "Save a prompt from the argument, from --file, or from stdin when neither is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()

			content, err := promptContent(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}

			p, err := a.domain.Prompts.Save(cmd.Context(), content)
			if errors.Is(err, prompts.ErrDuplicate) {
				a.out.warn("already saved")
				return nil
			}
			if err != nil {
				return err
			}

			if done, err := a.out.value(p); done {
				return err
			}
			a.out.success("saved as %s", p.Name)
			a.out.field("id", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read prompt content from a file")
	return cmd
}

func newPromptsShowCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()

			p, err := findPrompt(cmd, a, args[0])
			if err != nil {
				return err
			}

			if done, err := a.out.value(p); done {
				return err
			}
			a.out.field("id", p.ID)
			a.out.field("name", p.Name)
			a.out.field("description", p.Description)
			a.out.field("created", p.CreatedAt.String())
			a.out.field("history", len(p.RelatedHistory))
			a.out.line("")
			return a.out.markdown(p.Content)
		},
	}
}

func findPrompt(cmd *cobra.Command, a *app, ref string) (*prompts.Prompt, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return a.domain.Prompts.Find(cmd.Context(), id)
	}

	p, ok := lo.Find(a.domain.Prompts.List(cmd.Context()), func(p prompts.Prompt) bool {
		return p.Name == ref
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", prompts.ErrNotFound, ref)
	}
	return &p, nil
}

func promptContent(stdin io.Reader, args []string, file string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read prompt file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func firstLine(s string, limit int) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	if len([]rune(s)) > limit {
		return string([]rune(s)[:limit]) + "…"
	}
	return s
}
