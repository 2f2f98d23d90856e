package alkahest

// maxAddrValue returns the largest value representable in AddressWidth
// bytes, i.e. 2^(8*AddressWidth) - 1.
func maxAddrValue() uint64 {
	if AddressWidth >= 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (8 * AddressWidth)) - 1
}

// checkedAddr validates v fits in an address word before it is written,
// per spec: "Serialization fails with SizeOverflow if any value to be
// written exceeds 2^(8W)-1."
func checkedAddr(v uint64) error {
	if v > maxAddrValue() {
		return &SizeOverflowError{Value: v, WidthBit: 8 * AddressWidth}
	}
	return nil
}
