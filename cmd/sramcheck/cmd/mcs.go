package cmd

import (
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/sarchlab/sramcheck/ble/att"
	"github.com/sarchlab/sramcheck/ble/mcs"
	"github.com/spf13/cobra"
)

func newMCSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcs",
		Short: "Print the attribute table of the Maxim custom BLE service.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := att.NewServer(nil)
			if err := mcs.New().AddGroup(server); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HANDLE\tNAME\tTYPE\tVALUE")

			for _, a := range server.Attrs() {
				fmt.Fprintf(w, "0x%04x\t%s\t%s\t%s\n",
					a.Handle, mcs.HandleName(a.Handle), a.Type,
					hex.EncodeToString(a.Value))
			}

			return w.Flush()
		},
	}
}
