package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/pkg/betting"
)

func orderCommand() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "Place and cancel orders",
		Subcommands: []*cli.Command{
			{
				Name:  "place",
				Usage: "Place a limit order on a market",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "market",
						Usage:    "market ID",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "selection",
						Usage:    "runner selection ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "side",
						Usage: "BACK or LAY",
						Value: string(betting.SideBack),
					},
					&cli.Float64Flag{
						Name:     "price",
						Usage:    "odds to request",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "size",
						Usage:    "stake in account currency",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "persistence",
						Usage: "LAPSE, PERSIST or MARKET_ON_CLOSE",
						Value: string(betting.PersistLapse),
					},
					&cli.StringFlag{
						Name:  "customer-ref",
						Usage: "idempotency reference for the whole request",
					},
				},
				Action: orderPlaceAction,
			},
			{
				Name:  "cancel",
				Usage: "Cancel unmatched orders on a market",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "market",
						Usage:    "market ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "bet",
						Usage: "bet IDs to cancel (default: all unmatched on the market)",
					},
					&cli.StringFlag{
						Name:  "customer-ref",
						Usage: "idempotency reference for the whole request",
					},
				},
				Action: orderCancelAction,
			},
		},
	}
}

func orderPlaceAction(c *cli.Context) error {
	side := betting.Side(strings.ToUpper(c.String("side")))
	if side != betting.SideBack && side != betting.SideLay {
		return fmt.Errorf("invalid side %q: want BACK or LAY", c.String("side"))
	}

	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	instruction := betting.PlaceInstruction{
		OrderType:   betting.OrderLimit,
		SelectionID: c.Int64("selection"),
		Side:        side,
		LimitOrder: &betting.LimitOrder{
			Size:            c.Float64("size"),
			Price:           c.Float64("price"),
			PersistenceType: betting.PersistenceType(strings.ToUpper(c.String("persistence"))),
		},
	}

	report, err := sess.betting.PlaceOrders(c.Context, c.String("market"),
		[]betting.PlaceInstruction{instruction}, c.String("customer-ref"))
	if err != nil {
		return err
	}
	return render(c, report)
}

func orderCancelAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	var instructions []betting.CancelInstruction
	for _, betID := range c.StringSlice("bet") {
		instructions = append(instructions, betting.CancelInstruction{BetID: betID})
	}

	report, err := sess.betting.CancelOrders(c.Context, c.String("market"),
		instructions, c.String("customer-ref"))
	if err != nil {
		return err
	}
	return render(c, report)
}
