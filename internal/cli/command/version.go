package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/internal/infra/buildinfo"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version and build information",
		Action: func(c *cli.Context) error {
			return render(c, buildinfo.Get())
		},
	}
}
