package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/muesli/gominatim"
	"github.com/tkrajina/gpxgo/gpx"
	"github.com/urfave/cli/v2"

	"github.com/ralph1985/gas-price-finder/internal/fuelsearch"
	"github.com/ralph1985/gas-price-finder/internal/geocode"
	"github.com/ralph1985/gas-price-finder/internal/pricecache"
	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "List fuel prices for a postal code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "postal-code",
				Usage: "Five-digit postal code to search",
			},
			&cli.StringFlag{
				Name:     "location",
				Usage:    "Place name to resolve to a postal code",
				Required: false,
			},
			&cli.Float64Flag{
				Name:  "lat",
				Usage: "Latitude to resolve to a postal code",
			},
			&cli.Float64Flag{
				Name:  "long",
				Usage: "Longitude to resolve to a postal code",
			},
			&cli.StringSliceFlag{
				Name:    "fuel",
				Aliases: []string{"f"},
				Usage:   "Fuel product id to query (repeatable)",
				Value:   cli.NewStringSlice(fuelsearch.ProductIDs()...),
			},
		},
		Action: searchAction,
	}
}

func searchAction(c *cli.Context) error {
	postalCode := fuelsearch.NormalizePostalCode(c.String("postal-code"))
	lat := c.Float64("lat")
	lng := c.Float64("long")
	hasOrigin := lat != 0 || lng != 0

	if postalCode == "" {
		loc := c.String("location")
		if loc != "" {
			var err error
			lat, lng, err = geocodeLocation(loc)
			if err != nil {
				return err
			}
			hasOrigin = true
		}
		if !hasOrigin {
			return errors.New("postal-code, location or latitude and longitude are required")
		}

		locator := geocode.NewLocator(geocode.NewReverseGeocoder(slog.New(slog.DiscardHandler), nil))
		var err error
		postalCode, err = locator.LocatePostalCode(c.Context, lat, lng)
		if err != nil {
			return fmt.Errorf("error locating postal code: %w", err)
		}
		if postalCode == "" {
			return errors.New("no postal code found for that location")
		}
		fmt.Println("Postal code found:", postalCode)
	}

	if !fuelsearch.PostalCodePattern.MatchString(postalCode) {
		return fmt.Errorf("invalid postal code %q", postalCode)
	}

	clock := pricecache.NewClock(pricecache.DefaultResetHour)
	cache := pricecache.NewResultCache(pricecache.NewMemoryStore(), clock, pricecache.Options{})
	repo := fuelsearch.NewRepository(geoportal.NewClient(slog.New(slog.DiscardHandler)), cache, nil, nil)

	resp := repo.SearchBatch(c.Context, geoportal.Criteria{PostalCode: postalCode}, c.StringSlice("fuel"))
	if resp.Status != fuelsearch.StatusReady || resp.Result == nil {
		return errors.New("station search failed")
	}

	stations := resp.Result.Estaciones
	if hasOrigin {
		sort.SliceStable(stations, func(i, j int) bool {
			return stationDistance(stations[i], lat, lng) < stationDistance(stations[j], lat, lng)
		})
	}

	for i, station := range stations {
		label, ok := fuelsearch.ProductLabel(station.FuelID)
		if !ok {
			label = station.FuelID
		}
		fmt.Printf("%d. %s (%s)\n", i+1, station.Estacion.Rotulo, station.Estacion.Direccion)
		fmt.Printf("   Municipio: %s\n", station.Estacion.Municipio)
		fmt.Printf("   %s: %s €\n", label, formatPrice(station.Precio))
		if hasOrigin {
			if d := stationDistance(station, lat, lng); d >= 0 {
				fmt.Printf("   Distance: %.2f km\n", d/1000)
			}
		}
		fmt.Println()
	}

	fmt.Printf("Found %d prices in %s\n", len(stations), postalCode)
	return nil
}

func geocodeLocation(location string) (lat, lng float64, err error) {
	gominatim.SetServer("https://nominatim.openstreetmap.org/")
	qry := gominatim.SearchQuery{
		Q: location,
	}

	resp, err := qry.Get()
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding error: %w", err)
	}
	if len(resp) == 0 {
		return 0, 0, fmt.Errorf("no results found for location: %s", location)
	}
	fmt.Println("Location found:", resp[0].DisplayName)

	lat, err = strconv.ParseFloat(resp[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing latitude: %w", err)
	}
	lng, err = strconv.ParseFloat(resp[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing longitude: %w", err)
	}
	return lat, lng, nil
}

// stationDistance returns meters from the origin, or -1 when the station
// carries no decimal coordinates.
func stationDistance(station geoportal.Station, lat, lng float64) float64 {
	if station.Estacion.CoordenadaYDec == nil || station.Estacion.CoordenadaXDec == nil {
		return -1
	}
	return gpx.Distance2D(lat, lng, *station.Estacion.CoordenadaYDec, *station.Estacion.CoordenadaXDec, true)
}

func formatPrice(price *float64) string {
	if price == nil {
		return "-"
	}
	return strconv.FormatFloat(*price, 'f', 3, 64)
}
