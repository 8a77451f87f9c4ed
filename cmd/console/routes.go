package main

import (
	"cmp"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/console/pkg/router"
	"github.com/dmitrymomot/console/pkg/view"
)

func newRoutesCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			rt, err := router.LoadFile(cfg.App.Routes)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(rt.Rules()))
			for _, r := range rt.Rules() {
				rows = append(rows, []string{
					r.Name,
					cmp.Or(r.Method, router.AnyMethod),
					r.Pattern,
					router.Target{Module: r.Module, Action: r.Action}.String(),
				})
			}
			return view.Table([]string{"NAME", "METHOD", "PATTERN", "TARGET"}, rows).
				Render(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
