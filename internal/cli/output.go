package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"valuation_service/pkg/rest"
)

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func factor(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

func printValuation(w io.Writer, v rest.ValuationResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Estimated price:\t%s\n", money(v.EstimatedPrice))
	fmt.Fprintf(tw, "Price range:\t%s - %s\n", money(v.PriceRange.Min), money(v.PriceRange.Max))
	fmt.Fprintf(tw, "Confidence:\t%s\n", decimal.NewFromFloat(v.ConfidenceScore).StringFixed(2))
	fmt.Fprintf(tw, "Model version:\t%s\n", v.ModelVersion)
	fmt.Fprintln(tw, "Factors:")
	fmt.Fprintf(tw, "  base_price_per_sqm\t%s\n", money(v.Factors.BasePricePerSqm))
	fmt.Fprintf(tw, "  location_multiplier\t%s\n", factor(v.Factors.LocationMultiplier))
	fmt.Fprintf(tw, "  type_multiplier\t%s\n", factor(v.Factors.TypeMultiplier))
	fmt.Fprintf(tw, "  age_factor\t%s\n", factor(v.Factors.AgeFactor))
	fmt.Fprintf(tw, "  room_factor\t%s\n", factor(v.Factors.RoomFactor))
	fmt.Fprintf(tw, "  amenities_factor\t%s\n", factor(v.Factors.AmenitiesFactor))
	fmt.Fprintf(tw, "  floor_factor\t%s\n", factor(v.Factors.FloorFactor))

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tabwriter.Flush: %w", err)
	}

	return nil
}

func printBatch(w io.Writer, b rest.BatchValuationResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "INDEX\tSTATUS\tPRICE\tCONFIDENCE\tDETAIL")

	for _, r := range b.Results {
		if !r.Success {
			fmt.Fprintf(tw, "%d\tfailed\t-\t-\t%s: %s\n", r.Index, r.Code, r.Error)
			continue
		}

		fmt.Fprintf(
			tw,
			"%d\tok\t%s\t%s\t%s - %s\n",
			r.Index,
			money(lo.FromPtr(r.EstimatedPrice)),
			decimal.NewFromFloat(lo.FromPtr(r.ConfidenceScore)).StringFixed(2),
			money(lo.FromPtr(r.PriceRange).Min),
			money(lo.FromPtr(r.PriceRange).Max),
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tabwriter.Flush: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%s: %d successful, %d failed\n", b.Message, b.Successful, b.Failed)

	return err
}

func printTables(w io.Writer, t tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Cities:\t%s\n", strings.Join(t.Cities, ", "))
	fmt.Fprintf(tw, "Property types:\t%s\n", strings.Join(t.PropertyTypes, ", "))
	fmt.Fprintf(
		tw,
		"Model:\t%s (%s, updated %s)\n",
		t.Factors.ModelInfo.Version,
		t.Factors.ModelInfo.Description,
		t.Factors.ModelInfo.LastUpdated,
	)
	fmt.Fprintln(tw, "Factors:")

	names := lo.Keys(t.Factors.Factors)
	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, t.Factors.Factors[name])
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tabwriter.Flush: %w", err)
	}

	return nil
}
