package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/qszone/internal/config"
)

func zonesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List configured zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if configPath == "" {
				cfg, err = config.Load(".")
			} else {
				cfg, err = loadConfig(cmd.Context(), configPath)
			}
			if err != nil {
				return err
			}

			reg := cfg.Registry()
			names := reg.Names()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no zones configured")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tNULL KEYS\tDEFAULT KEYS\tDEFAULT")
			for _, name := range names {
				d, _ := reg.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					d.Name,
					joinOrDash(d.NullKeys),
					joinOrDash(d.DefaultKeys),
					orDash(d.DefaultValue),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file or s3://bucket/key (default ./"+config.ConfigFileName+")")

	return cmd
}

func joinOrDash(keys []string) string {
	return orDash(strings.Join(keys, ","))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
