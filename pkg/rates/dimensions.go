package rates

import (
	"fmt"
)

// AggregateItems reduces cart line items to a single parcel: weights are
// summed per quantity, dimensions take the running maximum per axis
// across all items. This matches the upstream carrier contract, which
// prices one parcel per request; it is not a bounding-box union.
//
// Items with missing weight or dimensions still contribute whatever data
// they have, but the result is reported incomplete so the caller can
// substitute defaults.
func AggregateItems(items []CartItem) (Package, bool) {
	var pkg Package
	complete := len(items) > 0

	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		if item.Weight > 0 {
			pkg.Weight += item.Weight * float64(qty)
		} else {
			complete = false
		}

		if item.Length > 0 {
			pkg.Length = max(pkg.Length, item.Length)
		} else {
			complete = false
		}
		if item.Width > 0 {
			pkg.Width = max(pkg.Width, item.Width)
		} else {
			complete = false
		}
		if item.Height > 0 {
			pkg.Height = max(pkg.Height, item.Height)
		} else {
			complete = false
		}
	}

	return pkg, complete
}

// Normalize clamps the package up to the carrier minimums and rejects
// packages over the carrier maximums.
func (p Package) Normalize() (Package, error) {
	if p.Weight > MaxWeightKG {
		return p, fmt.Errorf("%w: weight %.1fkg exceeds %.0fkg", ErrInvalidPackage, p.Weight, MaxWeightKG)
	}
	for _, side := range []float64{p.Length, p.Width, p.Height} {
		if side > MaxSideCM {
			return p, fmt.Errorf("%w: side %.1fcm exceeds %.0fcm", ErrInvalidPackage, side, MaxSideCM)
		}
	}

	out := p
	if out.Weight < MinWeightKG {
		out.Weight = MinWeightKG
	}
	if out.Length < MinSideCM {
		out.Length = MinSideCM
	}
	if out.Width < MinSideCM {
		out.Width = MinSideCM
	}
	if out.Height < MinSideCM {
		out.Height = MinSideCM
	}
	return out, nil
}
