package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/ralph1985/gas-price-finder/internal/geocode"
)

func locateCommand() *cli.Command {
	return &cli.Command{
		Name:  "locate",
		Usage: "Resolve coordinates to a postal code",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "lat",
				Usage:    "Latitude of the location",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "long",
				Usage:    "Longitude of the location",
				Required: true,
			},
		},
		Action: locateAction,
	}
}

func locateAction(c *cli.Context) error {
	locator := geocode.NewLocator(geocode.NewReverseGeocoder(slog.New(slog.DiscardHandler), nil))

	postalCode, err := locator.LocatePostalCode(c.Context, c.Float64("lat"), c.Float64("long"))
	if err != nil {
		return fmt.Errorf("error locating postal code: %w", err)
	}
	if postalCode == "" {
		return errors.New("no postal code found for that location")
	}

	fmt.Println(postalCode)
	return nil
}
