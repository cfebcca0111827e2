package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and resolve --scene without running a query, reporting any malformed document",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadScene()
		if err != nil {
			return err
		}
		scene, err := sceneio.Build(doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scene %q is valid: %d surfaces, %d chains\n", doc.Name, len(scene.Surfaces), len(scene.Chains))
		return nil
	},
}
