package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"CraneView/internal/crane/geometry"
	"CraneView/internal/preview"
	"CraneView/internal/report"
	"CraneView/internal/scad"
	"CraneView/internal/sheet"

	"github.com/spf13/cobra"
)

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Print the node coordinates",
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, _, err := buildScene(cmd)
		if err != nil {
			return err
		}
		return writeOut(cmd, func(w io.Writer) error {
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "node\tx\ty\tz\t")
			for _, name := range geometry.NodeNames() {
				pt := scene.Nodes[name]
				fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t\n", name, pt[0], pt[1], pt[2])
			}
			return tw.Flush()
		})
	},
}

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Write the render scene as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, _, err := buildScene(cmd)
		if err != nil {
			return err
		}
		return writeOut(cmd, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(scene)
		})
	},
}

var scadCmd = &cobra.Command{
	Use:   "scad",
	Short: "Write an OpenSCAD model",
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, _, err := buildScene(cmd)
		if err != nil {
			return err
		}
		return writeOut(cmd, func(w io.Writer) error {
			return scad.Write(w, scene.Nodes, scene.Members, scene.Params.PipeOD)
		})
	},
}

var (
	previewWidth, previewHeight int
	previewAz, previewEl        float64
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a WebP picture",
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, _, err := buildScene(cmd)
		if err != nil {
			return err
		}
		if outFile == "" {
			return fmt.Errorf("--out is required for binary output")
		}
		opt := preview.DefaultOptions()
		opt.Width, opt.Height = previewWidth, previewHeight
		opt.Azimuth, opt.Elevation = previewAz, previewEl
		return writeOut(cmd, func(w io.Writer) error {
			return preview.Encode(w, scene.Primitives, opt)
		})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF calculation sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, res, err := buildScene(cmd)
		if err != nil {
			return err
		}
		if outFile == "" {
			return fmt.Errorf("--out is required for binary output")
		}
		return writeOut(cmd, func(w io.Writer) error {
			return report.Write(w, report.Input{Material: materialName, Scene: scene, Result: res})
		})
	},
}

var xlsxCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write parameters, nodes and member results as a workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, res, err := buildScene(cmd)
		if err != nil {
			return err
		}
		if outFile == "" {
			return fmt.Errorf("--out is required for binary output")
		}
		return writeOut(cmd, func(w io.Writer) error {
			return sheet.Export(w, scene, res)
		})
	},
}

func init() {
	def := preview.DefaultOptions()
	previewCmd.Flags().IntVar(&previewWidth, "width", def.Width, "Image width in px")
	previewCmd.Flags().IntVar(&previewHeight, "height", def.Height, "Image height in px")
	previewCmd.Flags().Float64Var(&previewAz, "az", def.Azimuth, "Camera azimuth in degrees")
	previewCmd.Flags().Float64Var(&previewEl, "el", def.Elevation, "Camera elevation in degrees")

	rootCmd.AddCommand(geometryCmd, sceneCmd, scadCmd, previewCmd, reportCmd, xlsxCmd)
}
