// Package cli contains the rrtplan command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// CLI flags.
const (
	debugFlag      = "debug"
	logFileFlag    = "log-file"
	configFlag     = "config"
	seedFlag       = "seed"
	planIterFlag   = "plan-iter"
	timeoutFlag    = "timeout"
	outputFlag     = "output"
	geojsonFlag    = "geojson"
	resolutionFlag = "resolution"
)

// Version is replaced by LD flags.
var Version = ""

// NewApp returns the rrtplan app, writing output to out and errors to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	configFileFlag := &cli.StringFlag{
		Name:     configFlag,
		Aliases:  []string{"c"},
		Required: true,
		Usage:    "load the planning problem from `FILE`",
	}
	return &cli.App{
		Name:            "rrtplan",
		Usage:           "plan collision-free motions with rapidly-exploring random trees",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  logFileFlag,
				Usage: "also write logs to `FILE`, rotated every 64MB",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "search for a path from start to goal",
				UsageText: "rrtplan plan --config <problem.json> [--output <plan.json[.gz]>] [--geojson <plan.geojson>]",
				Flags: []cli.Flag{
					configFileFlag,
					&cli.Int64Flag{
						Name:  seedFlag,
						Usage: "override the random seed of the problem file",
					},
					&cli.IntFlag{
						Name:  planIterFlag,
						Usage: "override the iteration budget of the problem file",
					},
					&cli.Float64Flag{
						Name:  timeoutFlag,
						Usage: "override the time budget of the problem file, in seconds",
					},
					&cli.StringFlag{
						Name:    outputFlag,
						Aliases: []string{"o"},
						Usage:   "write the plan as JSON to `FILE`; gzip compressed if FILE ends in .gz",
					},
					&cli.StringFlag{
						Name:  geojsonFlag,
						Usage: "write obstacles, tree and path as a GeoJSON feature collection to `FILE`",
					},
					&cli.Float64Flag{
						Name:  resolutionFlag,
						Value: defaultExportResolution,
						Usage: "sample spacing of exported tree edges and trajectories",
					},
				},
				Action: PlanAction,
			},
			{
				Name:   "validate",
				Usage:  "check a problem file without planning",
				Flags:  []cli.Flag{configFileFlag},
				Action: ValidateAction,
			},
			{
				Name:   "version",
				Usage:  "print version info for this program",
				Action: VersionAction,
			},
		},
	}
}
