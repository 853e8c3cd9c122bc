package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendar"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func newSlotsCmd(configPath *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the slot grid of a day with free/reserved status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			lvl, _ := logger.ParseLevel(cfg.Logs.Level)
			log := logger.NewWithWriter(os.Stderr, lvl)

			store, err := openStorage(cmd.Context(), cfg, log, nil)
			if err != nil {
				return err
			}
			defer store.Close()

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			cal, err := calendar.NewService(cfg.Hours())
			if err != nil {
				return err
			}

			resp, err := getAvailabilityUC.NewUseCase(store.repo, cal, loc, log).
				Execute(cmd.Context(), &getAvailabilityUC.Request{Date: date})
			if err != nil {
				return err
			}

			printSlots(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "day to show, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func printSlots(w io.Writer, resp *getAvailabilityUC.Response) {
	fmt.Fprintf(w, "%s  (%d min slots, %d free, %d reserved)\n",
		resp.Date.Format(domain.DateFormat), resp.SlotMinutes, resp.FreeCount, resp.ReservedCount)
	for _, s := range resp.Slots {
		fmt.Fprintf(w, "  %s  %s\n", s.Time, s.Status)
	}
}
