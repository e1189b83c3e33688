package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"immolist/internal/config"
	"immolist/internal/domain"
	"immolist/internal/store"
)

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a starter catalog",
		Long:  "Write a small starter catalog into the data file. Refuses to overwrite existing listings unless --force is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing catalog")

	return cmd
}

func runSeed(force bool) error {
	cfg := config.Load()
	st := store.New(cfg.DataFile)

	if existing := st.Load(); len(existing) > 0 && !force {
		return fmt.Errorf("%s already holds %d listings; use --force to overwrite", cfg.DataFile, len(existing))
	}

	props := seedProperties()
	if err := st.Save(props); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(props)
	}
	fmt.Printf("Wrote %d listings to %s.\n", len(props), cfg.DataFile)
	return nil
}

func seedProperties() []domain.Property {
	return []domain.Property{
		{
			ID:       uuid.NewString(),
			Title:    "Appartement moderne centre-ville",
			City:     "Paris",
			Price:    450000,
			Surface:  65,
			Type:     domain.TypeSale,
			Category: domain.CategoryApartment,
			Status:   domain.StatusAvailable,
			Images:   []string{},
		},
		{
			ID:       uuid.NewString(),
			Title:    "Maison avec jardin",
			City:     "Lyon",
			Price:    320000,
			Surface:  120,
			Type:     domain.TypeSale,
			Category: domain.CategoryHouse,
			Status:   domain.StatusAvailable,
			Images:   []string{},
		},
		{
			ID:       uuid.NewString(),
			Title:    "Studio lumineux",
			City:     "Marseille",
			Price:    180000,
			Surface:  35,
			Type:     domain.TypeSale,
			Category: domain.CategoryStudio,
			Status:   domain.StatusAvailable,
			Images:   []string{},
		},
	}
}
