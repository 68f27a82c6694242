package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cranectl",
	Short: "Offline tools for the monopole pipe crane model",
	Long: `cranectl builds the crane frame from a parameter file, optionally asks the
FEM service for displacements and stresses, and writes the result as JSON,
OpenSCAD, WebP, PDF or XLSX.

Examples:
  cranectl geometry --params crane.json
  cranectl scene --solve --scale 20 --out scene.json
  cranectl scad --out crane_model.scad
  cranectl preview --solve --out crane.webp`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
