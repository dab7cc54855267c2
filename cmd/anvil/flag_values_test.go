// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/devnode/anvil/internal/node"
)

func TestEnumValue_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    node.Hardfork
		wantErr bool
	}{
		{in: "cancun", want: node.HardforkCancun},
		{in: " London ", want: node.HardforkLondon},
		{in: "PRAGUE", want: node.HardforkPrague},
		{in: "frontier", want: node.HardforkLatest, wantErr: true},
		{in: "", want: node.HardforkLatest, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			var hf node.Hardfork
			v := newEnumValue(&hf, node.HardforkLatest, node.Hardforks(), "hardfork")
			err := v.Set(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, node.ErrInvalidHardfork) {
				t.Errorf("Set(%q) error = %v, want ErrInvalidHardfork", tt.in, err)
			}
			if hf != tt.want {
				t.Errorf("value = %q, want %q", hf, tt.want)
			}
			if v.String() != string(tt.want) {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestEnumValue_Options(t *testing.T) {
	t.Parallel()

	var order node.TransactionOrder
	v := newEnumValue(&order, node.OrderFees, node.TransactionOrders(), "order")
	if got, want := v.Options(), []string{"fees", "fifo"}; !slices.Equal(got, want) {
		t.Errorf("Options() = %v, want %v", got, want)
	}
	if v.Type() != "order" {
		t.Errorf("Type() = %q, want %q", v.Type(), "order")
	}
	var _ optionsValue = v
}

func TestSecondsValue_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "12", want: 12 * time.Second},
		{in: "0.5", want: 500 * time.Millisecond},
		{in: "0", want: 0},
		{in: "-1", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "1e300", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			var d time.Duration
			v := newSecondsValue(&d)
			err := v.Set(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && d != tt.want {
				t.Errorf("Set(%q) = %v, want %v", tt.in, d, tt.want)
			}
		})
	}
}

func TestSecondsValue_String(t *testing.T) {
	t.Parallel()

	d := 1500 * time.Millisecond
	if got := newSecondsValue(&d).String(); got != "1.5" {
		t.Errorf("String() = %q, want %q", got, "1.5")
	}
}
