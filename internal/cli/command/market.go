package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/pkg/betting"
)

// filterFlags are shared by the market listing subcommands.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "text-query",
			Usage: "free-text filter, e.g. a team or horse name",
		},
		&cli.StringSliceFlag{
			Name:  "event-type",
			Usage: "restrict to event type IDs (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "competition",
			Usage: "restrict to competition IDs (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "event",
			Usage: "restrict to event IDs (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "country",
			Usage: "restrict to ISO country codes (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "market-type",
			Usage: "restrict to market type codes, e.g. MATCH_ODDS (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "in-play",
			Usage: "only markets currently in play",
		},
		&cli.StringFlag{
			Name:  "locale",
			Usage: "response language",
		},
	}
}

// marketFilter assembles a MarketFilter from the shared flags.
func marketFilter(c *cli.Context) betting.MarketFilter {
	f := betting.MarketFilter{
		TextQuery:       c.String("text-query"),
		EventTypeIDs:    c.StringSlice("event-type"),
		CompetitionIDs:  c.StringSlice("competition"),
		EventIDs:        c.StringSlice("event"),
		MarketCountries: c.StringSlice("country"),
		MarketTypeCodes: c.StringSlice("market-type"),
	}
	if c.Bool("in-play") {
		inPlay := true
		f.InPlayOnly = &inPlay
	}
	return f
}

func marketCommand() *cli.Command {
	return &cli.Command{
		Name:  "market",
		Usage: "Market discovery",
		Subcommands: []*cli.Command{
			{
				Name:   "event-types",
				Usage:  "List sports with open markets",
				Flags:  filterFlags(),
				Action: listEventTypesAction,
			},
			{
				Name:   "competitions",
				Usage:  "List competitions with open markets",
				Flags:  filterFlags(),
				Action: listCompetitionsAction,
			},
			{
				Name:   "events",
				Usage:  "List events with open markets",
				Flags:  filterFlags(),
				Action: listEventsAction,
			},
			{
				Name:   "types",
				Usage:  "List market type codes",
				Flags:  filterFlags(),
				Action: listMarketTypesAction,
			},
			{
				Name:   "countries",
				Usage:  "List countries hosting markets",
				Flags:  filterFlags(),
				Action: listCountriesAction,
			},
			{
				Name:   "venues",
				Usage:  "List venues hosting markets",
				Flags:  filterFlags(),
				Action: listVenuesAction,
			},
			{
				Name:   "time-ranges",
				Usage:  "List market time ranges",
				Flags: append(filterFlags(), &cli.StringFlag{
					Name:  "granularity",
					Usage: "bucket size (DAYS, HOURS, MINUTES)",
					Value: string(betting.GranularityDays),
				}),
				Action: listTimeRangesAction,
			},
			{
				Name:   "catalogue",
				Usage:  "List market catalogue entries",
				Flags:  catalogueFlags(),
				Action: listCatalogueAction,
			},
		},
	}
}

func listEventTypesAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	res, err := sess.betting.ListEventTypes(c.Context, marketFilter(c), c.String("locale"))
	if err != nil {
		return err
	}
	return render(c, res)
}

func listCompetitionsAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	res, err := sess.betting.ListCompetitions(c.Context, marketFilter(c), c.String("locale"))
	if err != nil {
		return err
	}
	return render(c, res)
}

func listEventsAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	res, err := sess.betting.ListEvents(c.Context, marketFilter(c), c.String("locale"))
	if err != nil {
		return err
	}
	return render(c, res)
}

func listMarketTypesAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	res, err := sess.betting.ListMarketTypes(c.Context, marketFilter(c), c.String("locale"))
	if err != nil {
		return err
	}
	return render(c, res)
}

func listCountriesAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	res, err := sess.betting.ListCountries(c.Context, marketFilter(c), c.String("locale"))
	if err != nil {
		return err
	}
	return render(c, res)
}

func listVenuesAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	res, err := sess.betting.ListVenues(c.Context, marketFilter(c), c.String("locale"))
	if err != nil {
		return err
	}
	return render(c, res)
}

func listTimeRangesAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	granularity := betting.TimeGranularity(c.String("granularity"))
	res, err := sess.betting.ListTimeRanges(c.Context, marketFilter(c), granularity)
	if err != nil {
		return err
	}
	return render(c, res)
}

func catalogueFlags() []cli.Flag {
	return append(filterFlags(),
		&cli.IntFlag{
			Name:  "max-results",
			Usage: "maximum number of markets to return",
			Value: 25,
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "market sort order (FIRST_TO_START, MAXIMUM_TRADED, ...)",
			Value: string(betting.SortFirstToStart),
		},
		&cli.BoolFlag{
			Name:  "runners",
			Usage: "include runner descriptions",
		},
	)
}

func listCatalogueAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	var projection []betting.MarketProjection
	if c.Bool("runners") {
		projection = append(projection, betting.ProjectionRunnerDesc)
	}
	res, err := sess.betting.ListMarketCatalogue(c.Context, marketFilter(c),
		projection, betting.MarketSort(c.String("sort")), c.Int("max-results"))
	if err != nil {
		return err
	}
	return render(c, res)
}
