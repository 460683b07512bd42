package main

import (
	"os"

	"github.com/cubebake/cubebake/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	outputFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Value: "assets",
			Usage: "output directory for KTX files",
		},
		cli.StringFlag{
			Name:  "name, n",
			Value: "cubemap",
			Usage: "base name for output KTX files",
		},
	}

	app := cli.NewApp()
	app.Name = "cubebake"
	app.Usage = "bake equirectangular HDR environment maps into pre-filtered KTX2 cubemaps"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a yaml, toml or json file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "bake",
			Usage: "bake, crop and pack an environment map",
			Description: `
Render the specular mip chain and the diffuse irradiance cubemap of an
equirectangular environment map, cut the six faces out of every composite
render and pack them into <name>_specular.ktx2 and <name>_diffuse.ktx2.

The environment map may be a local file or an http(s) URL.`,
			ArgsUsage: "environment_map.hdr",
			Flags: append([]cli.Flag{
				cli.Float64Flag{
					Name:  "white-point",
					Usage: "value for the white point node in the world shader",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "eq2cube.blend",
					Usage: "scene file loaded by the renderer",
				},
				cli.StringFlag{
					Name:  "script",
					Value: "bake_cubemap.py",
					Usage: "bake script passed to the renderer; empty for a plain invocation",
				},
			}, outputFlags...),
			Action: cmd.Bake,
		},
		{
			Name:  "crop",
			Usage: "cut cubemap faces out of previously baked composite images",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "concurrency",
					Usage: "maximum number of levels processed at once (0 = all, 1 = sequential)",
				},
			},
			Action: cmd.Crop,
		},
		{
			Name:  "pack",
			Usage: "pack cropped cubemap faces into KTX2 containers",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "input, i",
					Value: "output/cropped",
					Usage: "directory containing the mip and diffuse face directories",
				},
			}, outputFlags...),
			Action: cmd.Pack,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
