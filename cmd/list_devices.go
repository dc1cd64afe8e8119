package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the cpu resources available to the renderer.
func ListDevices(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Device", "Arch", "Logical CPUs", "GOMAXPROCS"})
	table.Append([]string{
		"cpu",
		fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("%d", runtime.NumCPU()),
		fmt.Sprintf("%d", runtime.GOMAXPROCS(0)),
	})
	table.Render()

	logger.Noticef("available devices\n%s", buf.String())
	return nil
}
