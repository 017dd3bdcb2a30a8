package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-across/internal/across"
	"github.com/litescript/ls-across/internal/astro"
	"github.com/litescript/ls-across/internal/schema"
	"github.com/litescript/ls-across/internal/ui"
)

func targetFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "target name, resolved when --ra/--dec are not given")
	cmd.Flags().String("ra", "", "right ascension in degrees, or with a unit (5.5h, 1.44rad)")
	cmd.Flags().String("dec", "", "declination in degrees, or with a unit (22arcmin)")
}

func rangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("begin", "", "start of the range (YYYY-MM-DD[ HH:MM:SS], ISO 8601 or met:<Swift MET seconds>)")
	cmd.Flags().String("end", "", "end of the range")
}

func (a *app) helloCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hello [name]",
		Short: "Check that the API answers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			res, err := a.client.Hello(cmd.Context(), name)
			if err != nil {
				return err
			}
			return a.emitLine(res, res.Hello)
		},
	}
}

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a target name to RA/Dec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emitLine(res, fmt.Sprintf("%s: RA %.5f Dec %+.5f (%s)", args[0], res.RA, res.Dec, res.Resolver))
		},
	}
}

func (a *app) visibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visibility",
		Short: "List windows in which a target is observable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mission, err := a.missionFor(cmd, across.APIVisibility, http.MethodGet)
			if err != nil {
				return err
			}
			var req across.VisibilityRequest
			if err := a.decode(flagInput(cmd, "name", "ra", "dec", "begin", "end", "hires"), &req); err != nil {
				return err
			}
			res, err := a.client.Visibility(cmd.Context(), mission, req)
			if err != nil {
				return err
			}

			// the name was resolved by Visibility and is cached
			var target *astro.Position
			if err := a.client.ResolveTarget(cmd.Context(), &req.Target); err != nil {
				a.log.Warn("no position for %s: %v", req.Name, err)
			} else if req.RA != nil && req.Dec != nil {
				target = &astro.Position{RA: *req.RA, Dec: *req.Dec}
			}
			title := fmt.Sprintf("%s visibility", mission)
			if req.Name != "" {
				title += " of " + req.Name
			}
			return a.emit(cmd.Context(), res, ui.WindowTable(title, res, target))
		},
	}
	targetFlags(cmd)
	rangeFlags(cmd)
	cmd.Flags().Bool("hires", false, "compute windows at one second resolution")
	return cmd
}

func (a *app) saaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saa",
		Short: "List South Atlantic Anomaly passages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mission, err := a.missionFor(cmd, across.APISAA, http.MethodGet)
			if err != nil {
				return err
			}
			var req across.SAARequest
			if err := a.decode(flagInput(cmd, "begin", "end"), &req); err != nil {
				return err
			}
			res, err := a.client.SAA(cmd.Context(), mission, req)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.PassageTable(fmt.Sprintf("%s SAA passages", mission), res.Entries))
		},
	}
	rangeFlags(cmd)
	return cmd
}

func (a *app) ephemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ephem",
		Short: "Show the spacecraft ephemeris",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mission, err := a.missionFor(cmd, across.APIEphem, http.MethodGet)
			if err != nil {
				return err
			}
			var req across.EphemRequest
			if err := a.decode(flagInput(cmd, "begin", "end", "stepsize"), &req); err != nil {
				return err
			}
			res, err := a.client.Ephem(cmd.Context(), mission, req)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.EphemTable(fmt.Sprintf("%s ephemeris", mission), res.Points()))
		},
	}
	rangeFlags(cmd)
	cmd.Flags().String("stepsize", "", "seconds between samples")
	return cmd
}

func (a *app) fovCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fov",
		Short: "Check whether a target falls in the field of view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mission, err := a.missionFor(cmd, across.APIFOVCheck, http.MethodGet)
			if err != nil {
				return err
			}
			var req across.FOVCheckRequest
			in := flagInput(cmd, "name", "ra", "dec", "begin", "end", "stepsize", "earthoccult", "instrument")
			if err := a.decode(in, &req); err != nil {
				return err
			}
			res, err := a.client.FOVCheck(cmd.Context(), mission, req)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.PointingTable(fmt.Sprintf("%s FOV check", mission), res))
		},
	}
	targetFlags(cmd)
	rangeFlags(cmd)
	cmd.Flags().String("stepsize", "", "seconds between samples")
	cmd.Flags().Bool("earthoccult", true, "count Earth occultation as out of view")
	cmd.Flags().String("instrument", "", "instrument whose field of view is checked")
	return cmd
}

// planCmd serves both the plan and the observations endpoints, which share
// their entry format.
func (a *app) planCmd(api across.API) *cobra.Command {
	use, short := "plan", "List planned observations"
	if api == across.APIObservations {
		use, short = "observations", "List completed observations"
	}

	var file string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			get, put := a.client.Plan, a.client.PutPlan
			if api == across.APIObservations {
				get, put = a.client.Observations, a.client.PutObservations
			}

			if file != "" {
				return a.putEntries(cmd, api, file, put)
			}

			mission, err := a.missionFor(cmd, api, http.MethodGet)
			if err != nil {
				return err
			}
			var q across.PlanQuery
			in := flagInput(cmd, "name", "ra", "dec", "begin", "end", "radius", "obsid", "targetid")
			if err := a.decode(in, &q); err != nil {
				return err
			}
			res, err := get(cmd.Context(), mission, q)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.PlanTable(fmt.Sprintf("%s %s", mission, use), res.Entries))
		},
	}
	targetFlags(cmd)
	rangeFlags(cmd)
	cmd.Flags().String("radius", "", "search radius around the position in degrees")
	cmd.Flags().String("obsid", "", "observation ID")
	cmd.Flags().String("targetid", "", "target ID")
	cmd.Flags().StringVar(&file, "put", "", "upload entries from a JSON or YAML file instead of listing")
	return cmd
}

type putFunc func(context.Context, across.Mission, schema.Credentials, []across.PlanEntry) (across.PlanResult, error)

func (a *app) putEntries(cmd *cobra.Command, api across.API, file string, put putFunc) error {
	mission, err := a.missionFor(cmd, api, http.MethodPut)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return fmt.Errorf("read entries: %w", err)
	}
	entries, err := a.decodeEntries(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}
	res, err := put(cmd.Context(), mission, a.credentials(), entries)
	if err != nil {
		return err
	}
	a.log.Info("uploaded %d %s entries to %s", len(entries), strings.ToLower(string(api)), mission)
	return a.emitLine(res, ui.StatusLine(res.Status))
}

// decodeEntries reads a JSON or YAML list of entries. Each entry goes
// through the decoder, so timestamps are normalized like flag input.
func (a *app) decodeEntries(data []byte) ([]across.PlanEntry, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make([]across.PlanEntry, len(raw))
	for i, in := range raw {
		if err := a.decode(in, &entries[i]); err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
	}
	return entries, nil
}
