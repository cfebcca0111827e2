package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
)

// sceneFlag names the scene source shared by every subcommand that
// needs one: either a built-in name (pkg/sceneio.Builtin) or a path to
// a YAML scene document.
var sceneFlag string

var rootCmd = &cobra.Command{
	Use:   "ricochet",
	Short: "Ricochet trajectory and visibility engine",
	Long: `ricochet computes reflection trajectories and visibility
polygons for the 2D ricochet engine, against either a built-in named
scene or a YAML scene document.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sceneFlag, "scene", "direct-shot", "built-in scene name or path to a YAML scene document")
	rootCmd.AddCommand(trajectoryCmd, visibilityCmd, serveCmd, validateCmd)
}

// loadScene resolves sceneFlag to a *sceneio.Document: a built-in name
// first, falling back to reading it as a file path, mirroring the
// teacher's tryLoadPBRTScene/createScene fallback order in main.go.
func loadScene() (*sceneio.Document, error) {
	if doc, ok := sceneio.Builtin(sceneFlag); ok {
		return doc, nil
	}
	f, err := os.Open(sceneFlag)
	if err != nil {
		return nil, errors.Wrapf(err, "ricochet: open scene %q", sceneFlag)
	}
	defer f.Close()
	return sceneio.Parse(f)
}

// parsePoint parses "x,y" as a geom.Vec2.
func parsePoint(s string) (geom.Vec2, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return geom.Vec2{}, errors.Errorf("ricochet: expected \"x,y\", got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Vec2{}, errors.Wrapf(err, "ricochet: parse x in %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Vec2{}, errors.Wrapf(err, "ricochet: parse y in %q", s)
	}
	return geom.New(x, y), nil
}
