package trophylodge

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/model"
)

var (
	grindSpecies string
	grindReserve string
)

func init() {
	rootCmd.AddCommand(grindCmd)
	grindCmd.AddCommand(grindAddCmd, grindListCmd, grindStartCmd, grindStopCmd, grindRemoveCmd)
	grindAddCmd.Flags().StringVar(&grindSpecies, "species", "", "species to grind, e.g. \"Red Deer\"")
	grindAddCmd.Flags().StringVar(&grindReserve, "reserve", "", "reserve to grind on, e.g. \"Hirschfelden\"")
	_ = grindAddCmd.MarkFlagRequired("species")
	_ = grindAddCmd.MarkFlagRequired("reserve")
}

var grindCmd = &cobra.Command{
	Use:   "grind",
	Short: "Manage kill grinds",
}

var grindAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Start a grind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := &model.Grind{
			Name:    args[0],
			Species: model.ParseSpeciesName(grindSpecies),
			Reserve: model.ParseReserveName(grindReserve),
		}
		if g.Species == model.SpeciesUnknown {
			return errors.InvalidArg("species")
		}
		if g.Reserve == model.ReserveUnknown {
			return errors.InvalidArg("reserve")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.AddGrind(cmd.Context(), g); err != nil {
			return err
		}
		fmt.Printf("grind %q started: %s on %s\n", g.Name, g.Species, g.Reserve)
		return nil
	},
}

var grindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List grinds",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		grinds, err := st.ListGrinds(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSPECIES\tRESERVE\tKILLS\tACTIVE\tSTARTED")
		for _, g := range grinds {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%s\n",
				g.Name, g.Species, g.Reserve, g.Kills, g.Active, g.Start.Local().Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var grindStopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop counting kills for a grind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return st.StopGrind(cmd.Context(), args[0])
	},
}

var grindStartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Resume counting kills for a stopped grind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return st.StartGrind(cmd.Context(), args[0])
	},
}

var grindRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a grind",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return st.RemoveGrind(cmd.Context(), args[0])
	},
}
