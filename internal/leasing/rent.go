package leasing

// RentAmount computes shares * pricePerShare * months. Any intermediate
// overflow fails the whole computation with ErrAmountOverflow.
func RentAmount(shares, pricePerShare, months uint64) (uint64, error) {
	base, ok := mulChecked(shares, pricePerShare)
	if !ok {
		return 0, ErrAmountOverflow
	}
	rent, ok := mulChecked(base, months)
	if !ok {
		return 0, ErrAmountOverflow
	}
	return rent, nil
}

func mulChecked(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/a != b {
		return 0, false
	}
	return p, true
}

func addChecked(a, b uint64) (uint64, bool) {
	s := a + b
	if s < a {
		return 0, false
	}
	return s, true
}
