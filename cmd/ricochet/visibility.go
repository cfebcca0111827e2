package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
)

var visibilityOrigin string

var visibilityCmd = &cobra.Command{
	Use:   "visibility",
	Short: "Project the visibility polygon for --scene's player (or --origin) and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadScene()
		if err != nil {
			return err
		}
		scene, err := sceneio.Build(doc)
		if err != nil {
			return err
		}

		e := buildEngine(scene)
		origin := scene.Player
		if visibilityOrigin != "" {
			origin, err = parsePoint(visibilityOrigin)
			if err != nil {
				return err
			}
		}

		points := e.GetVisibility(origin, scene.Chains, scene.Bounds, "", scene.Window, scene.RangeLimit)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	},
}

func init() {
	visibilityCmd.Flags().StringVar(&visibilityOrigin, "origin", "", "override the query origin as \"x,y\" (default: the scene's player)")
}
