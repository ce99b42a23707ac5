package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpane/internal/application/usecase"
	"github.com/bnema/dockpane/internal/domain/entity"
)

func newClassifyCmd() *cobra.Command {
	var rect, point []float64
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show which drop zone a point falls in",
		Long: `Classify a point against the 3x3 drop grid of a rectangle and print the
zone and the dock direction it maps to.

Example:
  dockpane classify --rect 0,0,90,30 --point 10,15   # row-left`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(rect) != 4 {
				return fmt.Errorf("--rect needs x,y,w,h")
			}
			if len(point) != 2 {
				return fmt.Errorf("--point needs x,y")
			}
			r := entity.Rect{X: rect[0], Y: rect[1], W: rect[2], H: rect[3]}
			pt := entity.Point{X: point[0], Y: point[1]}
			zone, ok := usecase.ClassifyHitZone(r, pt)
			if !ok {
				return fmt.Errorf("point %v is outside %v", point, rect)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "zone row=%d col=%d direction=%s\n", zone.Row, zone.Col, zone.Direction())
			return err
		},
	}
	cmd.Flags().Float64SliceVar(&rect, "rect", nil, "target rectangle as x,y,w,h")
	cmd.Flags().Float64SliceVar(&point, "point", nil, "pointer position as x,y")
	_ = cmd.MarkFlagRequired("rect")
	_ = cmd.MarkFlagRequired("point")
	return cmd
}
