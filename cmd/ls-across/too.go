package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-across/internal/across"
	"github.com/litescript/ls-across/internal/ui"
)

// trigger flags nest under trigger_info
var triggerFlags = map[string]string{
	"trigger-name":       "trigger_name",
	"trigger-mission":    "trigger_mission",
	"trigger-instrument": "trigger_instrument",
	"trigger-id":         "trigger_id",
	"trigger-duration":   "trigger_duration",
	"classification":     "classification",
	"justification":      "justification",
}

func (a *app) tooCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "too",
		Short: "Submit and manage Target of Opportunity requests",
	}
	cmd.AddCommand(
		a.tooSubmitCmd(),
		a.tooGetCmd(),
		a.tooDeleteCmd(),
		a.tooListCmd(),
	)
	return cmd
}

func (a *app) tooSubmitCmd() *cobra.Command {
	var healpix, update string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a TOO request, or update one with --update",
		RunE: func(cmd *cobra.Command, _ []string) error {
			method := http.MethodPost
			if update != "" {
				method = http.MethodPut
			}
			mission, err := a.missionFor(cmd, across.APITOO, method)
			if err != nil {
				return err
			}

			in := withCredentials(a, flagInput(cmd, "ra", "dec", "error", "trigger-time", "exposure", "offset"))
			info := map[string]any{}
			for name, key := range triggerFlags {
				if f := cmd.Flags().Lookup(name); f.Changed {
					info[key] = f.Value.String()
				}
			}
			if len(info) > 0 {
				in["trigger_info"] = info
			}

			var s across.TOOSubmission
			if err := a.decode(in, &s); err != nil {
				return err
			}

			var res across.TOO
			if update != "" {
				res, err = a.client.UpdateTOO(cmd.Context(), mission, update, s)
			} else {
				if healpix != "" {
					f, err := os.Open(filepath.Clean(healpix))
					if err != nil {
						return fmt.Errorf("open healpix map: %w", err)
					}
					defer f.Close()
					s.Healpix = &across.HealpixFile{Name: filepath.Base(healpix), Reader: f}
				}
				res, err = a.client.SubmitTOO(cmd.Context(), mission, s)
			}
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.TOOTable(fmt.Sprintf("%s TOO", mission), []across.TOO{res}))
		},
	}

	f := cmd.Flags()
	f.String("ra", "", "right ascension in degrees, or with a unit (5.5h)")
	f.String("dec", "", "declination in degrees, or with a unit")
	f.String("error", "", "localization error radius in degrees")
	f.String("trigger-time", "", "time of the trigger, or met:<Swift MET seconds>")
	f.String("exposure", "", fmt.Sprintf("requested exposure in seconds (default %d)", across.DefaultTOOExposure))
	f.String("offset", "", fmt.Sprintf("seconds of data before the trigger (default %d)", across.DefaultTOOOffset))
	f.String("trigger-name", "", "name of the trigger")
	f.String("trigger-mission", "", "mission that triggered")
	f.String("trigger-instrument", "", "instrument that triggered")
	f.String("trigger-id", "", "ID of the trigger")
	f.String("trigger-duration", "", "duration of the trigger in seconds")
	f.String("classification", "", "source classification")
	f.String("justification", "", "science justification")
	f.StringVar(&healpix, "healpix", "", "HEALPix localization map to upload")
	f.StringVar(&update, "update", "", "ID of an existing TOO to update")
	return cmd
}

func (a *app) tooGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a TOO request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mission, err := a.missionFor(cmd, across.APITOO, http.MethodGet)
			if err != nil {
				return err
			}
			res, err := a.client.GetTOO(cmd.Context(), mission, a.credentials(), args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.TOOTable(fmt.Sprintf("%s TOO", mission), []across.TOO{res}))
		},
	}
}

func (a *app) tooDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a TOO request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mission, err := a.missionFor(cmd, across.APITOO, http.MethodDelete)
			if err != nil {
				return err
			}
			res, err := a.client.DeleteTOO(cmd.Context(), mission, a.credentials(), args[0])
			if err != nil {
				return err
			}
			return a.emitLine(res, "deleted "+args[0])
		},
	}
}

func (a *app) tooListCmd() *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List TOO requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mission, err := a.missionFor(cmd, across.APITOORequests, http.MethodGet)
			if err != nil {
				return err
			}
			in := withCredentials(a, flagInput(cmd, "begin", "end", "length", "limit"))
			if l, ok := in["length"].(string); ok && unit != "" {
				v, err := lengthValue(l, unit)
				if err != nil {
					return err
				}
				in["length"] = v
			}
			var q across.TOORequestsQuery
			if err := a.decode(in, &q); err != nil {
				return err
			}
			res, err := a.client.TOORequests(cmd.Context(), mission, q)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.TOOTable(fmt.Sprintf("%s TOO requests", mission), res.Entries))
		},
	}
	rangeFlags(cmd)
	cmd.Flags().String("length", "", "length of the range in days, or a duration like 36h")
	cmd.Flags().StringVar(&unit, "length-unit", "", "unit of a plain --length number (d, h, min, s)")
	cmd.Flags().String("limit", "", "maximum number of requests")
	return cmd
}

func (a *app) jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List your API jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var q across.JobsQuery
			in := withCredentials(a, flagInput(cmd, "begin", "end", "reqtype", "unexpired-only"))
			if err := a.decode(in, &q); err != nil {
				return err
			}
			res, err := a.client.Jobs(cmd.Context(), q)
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), res, ui.JobTable("API jobs", res.Entries))
		},
	}
	rangeFlags(cmd)
	cmd.Flags().String("reqtype", "", "only jobs of this request type")
	cmd.Flags().Bool("unexpired-only", false, "hide expired jobs")
	return cmd
}

func (a *app) missionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missions",
		Short: "List missions and the APIs they offer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := ui.Table{Title: "Missions", Headers: []string{"Mission", "APIs"}}
			out := map[across.Mission][]across.API{}
			for _, m := range across.Missions {
				apis := m.APIs()
				out[m] = apis
				names := ""
				for i, api := range apis {
					if i > 0 {
						names += ", "
					}
					names += string(api)
				}
				t.Rows = append(t.Rows, []string{string(m), names})
			}
			return a.emit(cmd.Context(), out, t)
		},
	}
}
