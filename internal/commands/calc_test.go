package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calcOutput(t *testing.T, args ...string) map[string]string {
	t.Helper()
	out, _, err := runEntrydesk(t, append([]string{"calc"}, args...)...)
	require.NoError(t, err)

	values := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			values[fields[0]] = ""
		case 2:
			values[fields[0]] = fields[1]
		}
	}
	return values
}

func TestCalc(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]string
	}{
		{
			name: "standard row",
			args: []string{"--quantity", "10", "--rate", "100", "--discount", "10", "--tax-a", "5", "--tax-b", "5"},
			want: map[string]string{
				"amount": "1000.00", "discount_amount": "100.00", "net_amount": "900.00",
				"tax_value_a": "45.00", "tax_value_b": "45.00", "final_amount": "990.00",
			},
		},
		{
			name: "rounds each step",
			args: []string{"--quantity", "3", "--rate", "3.335", "--tax-a", "12.5"},
			want: map[string]string{"amount": "10.01", "tax_value_a": "1.25", "final_amount": "11.26"},
		},
		{
			name: "leading numeric prefix",
			args: []string{"--quantity", "12abc", "--rate", "2"},
			want: map[string]string{"amount": "24.00", "final_amount": "24.00"},
		},
		{
			name: "no inputs",
			want: map[string]string{"amount": "0.00", "final_amount": "0.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calcOutput(t, tt.args...)
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
		})
	}
}

func TestCalc_HideZero(t *testing.T) {
	got := calcOutput(t, "--quantity", "2", "--rate", "5", "--hide-zero")
	assert.Equal(t, "10.00", got["amount"])
	assert.Equal(t, "", got["discount_amount"])
	assert.Contains(t, got, "discount_amount")
}
