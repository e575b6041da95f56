package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

func newCalcCommand() *cobra.Command {
	var in calcInputs
	var hideZero bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Print the derived amounts of one line item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			li := in.lineItem()
			f := calc.Formatter{HideZero: hideZero}
			out := cmd.OutOrStdout()
			for _, c := range []model.Field{
				model.FieldAmount,
				model.FieldDiscountAmount,
				model.FieldNetAmount,
				model.FieldTaxValueA,
				model.FieldTaxValueB,
				model.FieldFinalAmount,
			} {
				fmt.Fprintf(out, "%-16s %s\n", c, f.Value(li, c))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.quantity, "quantity", "", "quantity (meters or pieces)")
	cmd.Flags().StringVar(&in.rate, "rate", "", "rate per unit")
	cmd.Flags().StringVar(&in.discount, "discount", "", "discount percent")
	cmd.Flags().StringVar(&in.taxA, "tax-a", "", "first tax percent")
	cmd.Flags().StringVar(&in.taxB, "tax-b", "", "second tax percent")
	cmd.Flags().BoolVar(&hideZero, "hide-zero", false, "print zero amounts as blank")

	return cmd
}

type calcInputs struct {
	quantity, rate, discount, taxA, taxB string
}

// lineItem feeds the flags through the calculator in entry order.
func (in calcInputs) lineItem() model.LineItem {
	li := model.NewLineItem("")
	li = calc.Recompute(li, model.FieldQuantity, in.quantity)
	li = calc.Recompute(li, model.FieldRate, in.rate)
	li = calc.Recompute(li, model.FieldDiscountPercent, in.discount)
	li = calc.Recompute(li, model.FieldTaxPercentA, in.taxA)
	li = calc.Recompute(li, model.FieldTaxPercentB, in.taxB)
	return li
}
