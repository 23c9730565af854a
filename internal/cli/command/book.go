package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/pkg/betting"
)

func bookCommand() *cli.Command {
	return &cli.Command{
		Name:      "book",
		Usage:     "Show live prices for markets",
		ArgsUsage: "MARKET_ID [MARKET_ID...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "best-prices",
				Usage: "include the best available back and lay prices",
			},
			&cli.BoolFlag{
				Name:  "traded",
				Usage: "include traded volume per price",
			},
			&cli.BoolFlag{
				Name:  "virtual",
				Usage: "include virtual prices",
			},
		},
		Action: bookAction,
	}
}

func bookAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one market ID is required")
	}

	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	var prices *betting.PriceProjection
	var data []betting.PriceData
	if c.Bool("best-prices") {
		data = append(data, betting.PriceExBestOffers)
	}
	if c.Bool("traded") {
		data = append(data, betting.PriceExTraded)
	}
	if len(data) > 0 || c.Bool("virtual") {
		prices = &betting.PriceProjection{PriceData: data}
		if c.Bool("virtual") {
			virtual := true
			prices.Virtualise = &virtual
		}
	}

	res, err := sess.betting.ListMarketBook(c.Context, c.Args().Slice(), prices)
	if err != nil {
		return err
	}
	return render(c, res)
}
