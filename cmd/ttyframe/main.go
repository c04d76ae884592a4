package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/ttyframe"
	"github.com/bodgit/ttyframe/render"
	"github.com/bodgit/ttyframe/tile"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/encoding/charmap"
)

const defaultDB = "ttyframe.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newBackend(name string, size float64) (tile.Backend, error) {
	switch name {
	case "inconsolata":
		return tile.Inconsolata(), nil
	case "gomono":
		return tile.GoMonoBold(size)
	default:
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return tile.LoadTrueType(b, size)
	}
}

func newCharmap(name string) (*charmap.Charmap, error) {
	switch name {
	case "latin1":
		return charmap.ISO8859_1, nil
	case "cp437":
		return charmap.CodePage437, nil
	default:
		return nil, fmt.Errorf("unknown charset \"%s\"", name)
	}
}

func open(c *cli.Context) (*ttyframe.TTYFrame, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	cm, err := newCharmap(c.String("charset"))
	if err != nil {
		return nil, err
	}

	b, err := newBackend(c.String("font"), c.Float64("size"))
	if err != nil {
		return nil, err
	}

	r, err := render.New(b, render.WithCharmap(cm))
	if err != nil {
		b.Close()
		return nil, err
	}

	t, err := ttyframe.New(c.String("db"), r, logger)
	if err != nil {
		r.Close()
		return nil, err
	}

	return t, nil
}

func output(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "ttyframe"
	app.Usage = "NetHack terminal session renderer"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TTYFRAME_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"TTYFRAME_FONT"},
			Value:   "inconsolata",
			Usage:   "glyph font; inconsolata, gomono, or path to a TrueType file",
		},
		&cli.Float64Flag{
			Name:  "size",
			Value: 14,
			Usage: "point size for TrueType fonts",
		},
		&cli.StringFlag{
			Name:  "charset",
			Value: "latin1",
			Usage: "character set of the terminal; latin1 or cp437",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Import a directory of observations as a session",
			Description: "",
			ArgsUsage:   "NAME DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				t, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer t.Close()

				if err := t.Import(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "games",
			Usage:       "List stored sessions",
			Description: "",
			Action: func(c *cli.Context) error {
				t, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer t.Close()

				games, err := t.Games()
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				for _, g := range games {
					fmt.Printf("%s\t%d\n", g.Name, g.Steps)
				}

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Render a single step as a PNG",
			Description: "",
			ArgsUsage:   "NAME STEP FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				step, err := strconv.Atoi(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				t, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer t.Close()

				w, err := output(c.Args().Get(2))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer w.Close()

				if err := t.RenderStep(c.Args().Get(0), step, w); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Render every step of a session",
			Description: "Writes a directory of PNG files, an animated GIF, or raw 640x384 rgb24 video frames",
			ArgsUsage:   "NAME OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: "png",
					Usage: "output format; png, gif, or rgb24",
				},
				&cli.IntFlag{
					Name:  "delay",
					Value: 10,
					Usage: "GIF frame delay in 100ths of a second",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: ttyframe.DefaultWorkers,
					Usage: "number of frames rendered concurrently for png",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				t, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer t.Close()

				name, path := c.Args().Get(0), c.Args().Get(1)

				switch c.String("format") {
				case "png":
					err = t.Export(name, path, c.Int("workers"))
				case "gif", "rgb24":
					var w io.WriteCloser
					if w, err = output(path); err != nil {
						return cli.NewExitError(err, 1)
					}
					defer w.Close()

					if c.String("format") == "gif" {
						err = t.ExportGIF(name, w, c.Int("delay"))
					} else {
						err = t.ExportRGB24(name, w)
					}
				default:
					err = fmt.Errorf("unknown format \"%s\"", c.String("format"))
				}
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
