package trophylodge

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/model"
	"github.com/sjzar/trophylodge/internal/lodge/store"
)

var (
	trophySpecies string
	trophyReserve string
	trophyRating  string
	trophySort    string
	trophyLimit   int
)

func init() {
	rootCmd.AddCommand(trophiesCmd)
	trophiesCmd.Flags().StringVar(&trophySpecies, "species", "", "only this species")
	trophiesCmd.Flags().StringVar(&trophyReserve, "reserve", "", "only this reserve")
	trophiesCmd.Flags().StringVar(&trophyRating, "rating", "", "only this rating, e.g. Diamond or \"Great One\"")
	trophiesCmd.Flags().StringVar(&trophySort, "sort", "date", "date, score, weight, rating or shot_distance")
	trophiesCmd.Flags().IntVarP(&trophyLimit, "limit", "n", 50, "maximum rows, 0 for all")
}

var trophiesCmd = &cobra.Command{
	Use:   "trophies",
	Short: "List recorded trophies",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := store.Filter{Limit: trophyLimit}
		if trophySpecies != "" {
			if f.Species = model.ParseSpeciesName(trophySpecies); f.Species == model.SpeciesUnknown {
				return errors.InvalidArg("species")
			}
		}
		if trophyReserve != "" {
			if f.Reserve = model.ParseReserveName(trophyReserve); f.Reserve == model.ReserveUnknown {
				return errors.InvalidArg("reserve")
			}
		}
		if trophyRating != "" {
			var r model.Rating
			if err := r.UnmarshalText([]byte(trophyRating)); err != nil {
				return errors.InvalidArg("rating")
			}
			f.Rating = &r
		}
		sort, err := store.ParseSortBy(trophySort)
		if err != nil {
			return err
		}
		f.Sort = sort

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		trophies, err := st.ListTrophies(cmd.Context(), f)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSPECIES\tRESERVE\tRATING\tSCORE\tWEIGHT\tFUR\tDISTANCE\tGRIND")
		for _, t := range trophies {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\t%.1f\t%s\n",
				t.Date.Local().Format("2006-01-02 15:04"), t.Species, t.Reserve, t.Rating,
				t.Score, t.Weight, t.Fur, t.ShotDistance, t.Grind)
		}
		return w.Flush()
	},
}
