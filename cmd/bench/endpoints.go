package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEndpointsCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"ep"},
		Short:   "Manage registered endpoint URLs",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered endpoints",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a := current()
				urls := a.domain.Endpoints.List(cmd.Context())
				if done, err := a.out.value(urls); done {
					return err
				}
				if len(urls) == 0 {
					a.out.line("%s", a.out.dim("no endpoints registered"))
					return nil
				}
				for _, u := range urls {
					a.out.line("%s", u)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <url>",
			Short: "Register an endpoint URL",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := current()
				added, err := a.domain.Endpoints.Register(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !added {
					a.out.warn("%s is already registered", args[0])
					return nil
				}
				a.out.success("registered %s", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <url>",
			Aliases: []string{"remove", "delete"},
			Short:   "Remove a registered endpoint URL",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := current()
				removed, err := a.domain.Endpoints.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("%s is not registered", args[0])
				}
				a.out.success("removed %s", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "probe",
			Short: "Check which registered endpoints answer a GET",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a := current()
				results := a.domain.Tester.Probe(cmd.Context())
				if done, err := a.out.value(results); done {
					return err
				}
				for _, r := range results {
					state := a.out.status("OK")
					if !r.Reachable {
						state = a.out.status("FAIL")
					}
					detail := fmt.Sprintf("%dms", r.LatencyMS)
					if r.Status != 0 {
						detail = fmt.Sprintf("%d %s", r.Status, detail)
					}
					if r.Error != "" {
						detail += " " + r.Error
					}
					a.out.line("%s %s %s", state, r.URL, a.out.dim(detail))
				}
				return nil
			},
		},
	)

	return cmd
}
