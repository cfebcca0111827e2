package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
)

var trajectoryCmd = &cobra.Command{
	Use:   "trajectory",
	Short: "Compute the full four-section trajectory for --scene and print it as JSON",
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
		result := e.GetFullTrajectory()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"reachedCursor":  result.Merged.ReachedCursor,
			"fullyAligned":   result.Merged.FullyAligned,
			"diverged":       result.Merged.Diverged,
			"segments":       len(result.Merged.Segments),
			"arrowWaypoints": result.ArrowWaypoints,
		})
	},
}
