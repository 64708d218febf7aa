package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/qszone/internal/config"
	"github.com/vango-dev/qszone/internal/errors"
	"github.com/vango-dev/qszone/pkg/link"
	"github.com/vango-dev/qszone/pkg/location"
	"github.com/vango-dev/qszone/pkg/search"
	"github.com/vango-dev/qszone/pkg/server"
	"github.com/vango-dev/qszone/pkg/zone"
)

type hrefOptions struct {
	url    string
	path   string
	search string
	hash   string
	query  string

	zone         string
	nullKeys     []string
	defaultKeys  []string
	defaultValue string
	config       string

	lossless bool
	json     bool
}

func hrefCmd() *cobra.Command {
	var opts hrefOptions

	cmd := &cobra.Command{
		Use:   "href",
		Short: "Compute one href",
		Long: `Compute the href for a query-string fragment merged into a location.

The location is given either whole with --url or in parts with --path,
--search and --hash. The merge can be intercepted by a configured zone
(--zone) or by an ad hoc one (--null-keys, --default-keys).

Examples:
  qszone href --url '/list?page=2' --query 'sort=asc'
  qszone href --url '/list?page=2' --query 'sort=asc' --null-keys page
  qszone href --path /list --search 'page=4' --default-keys page --default-value 1
  qszone href --config qszone.yaml --zone results --url '/list?page=2'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHref(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.url, "url", "u", "", "Current location, e.g. /list?page=2#top")
	f.StringVar(&opts.path, "path", "", "Current path")
	f.StringVar(&opts.search, "search", "", "Current query string, without '?'")
	f.StringVar(&opts.hash, "hash", "", "Current hash, without '#'")
	f.StringVarP(&opts.query, "query", "q", "", "Query-string fragment to merge")
	f.StringVarP(&opts.zone, "zone", "z", "", "Configured zone to merge through")
	f.StringSliceVar(&opts.nullKeys, "null-keys", nil, "Keys to null before merging")
	f.StringSliceVar(&opts.defaultKeys, "default-keys", nil, "Keys to reset before merging")
	f.StringVar(&opts.defaultValue, "default-value", "", "Value for --default-keys")
	f.StringVarP(&opts.config, "config", "c", "", "Config file or s3://bucket/key (default ./"+config.ConfigFileName+" when --zone is set)")
	f.BoolVar(&opts.lossless, "lossless", false, "Keep every '=' after the first in --query values")
	f.BoolVar(&opts.json, "json", false, "Print a JSON object instead of the bare href")

	cmd.MarkFlagsMutuallyExclusive("url", "path")
	cmd.MarkFlagsMutuallyExclusive("url", "search")
	cmd.MarkFlagsMutuallyExclusive("url", "hash")

	return cmd
}

func runHref(cmd *cobra.Command, opts hrefOptions) error {
	z, err := resolveZone(cmd, opts)
	if err != nil {
		return err
	}

	snap := location.ParseURL(opts.url)
	if opts.url == "" {
		snap = location.Snapshot{Path: opts.path, Search: search.Parse(opts.search), Hash: opts.hash}
		if snap.Path == "" {
			snap.Path = "/"
		}
	}

	href := link.ComputeWith(snap, opts.query, z, search.ParseOptions{KeepExtraEquals: opts.lossless})

	out := cmd.OutOrStdout()
	if !opts.json {
		fmt.Fprintln(out, href)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return enc.Encode(server.HrefResponse{
		Href:       href,
		Zone:       z.Name(),
		Overridden: z.HasOverride(),
	})
}

// resolveZone returns the zone selected by the flags, or nil for a plain
// merge.
func resolveZone(cmd *cobra.Command, opts hrefOptions) (*zone.Zone, error) {
	adHoc := zone.Definition{
		NullKeys:     opts.nullKeys,
		DefaultKeys:  opts.defaultKeys,
		DefaultValue: opts.defaultValue,
	}

	if opts.zone == "" {
		o := adHoc.Override()
		if o == nil {
			return nil, nil
		}
		z := zone.New("")
		z.SetOverride(o)
		return z, nil
	}

	if len(opts.nullKeys) > 0 || len(opts.defaultKeys) > 0 {
		return nil, errors.New("E060").
			WithSuggestion("Add the keys to the zone definition, or drop --zone")
	}

	var (
		cfg *config.Config
		err error
	)
	if opts.config == "" {
		cfg, err = config.Load(".")
	} else {
		cfg, err = loadConfig(cmd.Context(), opts.config)
	}
	if err != nil {
		return nil, err
	}

	z, ok := cfg.Registry().New(opts.zone)
	if !ok {
		return nil, errors.New("E020").
			WithDetail("No zone named \"" + opts.zone + "\" in " + cfg.Path() + ".").
			WithSuggestion("Run 'qszone zones' to list the configured zones")
	}
	return z, nil
}
