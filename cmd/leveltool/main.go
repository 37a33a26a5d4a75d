// leveltool builds the demo level without a window and reports on the
// derived data.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "leveltool"
	app.Usage = "build level data headlessly and inspect it"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to config file",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "pack",
			Usage: "build the ray-tracing pack and list its meshes",
			Description: `
Build mesh data for the demo level, pack it into the ray-tracing
vertex pool, mesh table and instance table and print one row per mesh.

With --out the three tables are written as little-endian std430 buffers.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "directory for vertices.bin, meshes.bin and instances.bin",
				},
			},
			Action: packLevel,
		},
		{
			Name:  "cloud",
			Usage: "build the light-propagation point cloud",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "spacing",
					Usage: "grid spacing, overrides the config",
				},
				cli.Float64Flag{
					Name:  "reach",
					Usage: "max distance from a surface, overrides the config",
				},
			},
			Action: buildCloud,
		},
		{
			Name:   "lights",
			Usage:  "list the configured light setups",
			Action: listLights,
		},
		{
			Name:   "info",
			Usage:  "summarize the level collections",
			Action: levelInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
