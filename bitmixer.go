package kleene

const (
	// Golden ratio bit mixers.
	PHI_C32 = uint32(0x9e3779b9)
	PHI_C64 = uint64(0x9e3779b97f4a7c15)
)

// Seeds keep values of different kinds with equal payloads apart.
const (
	seedInt      = uint64(0x2545f4914f6cdd1d)
	seedSym      = uint64(0x9fb21c651e98df25)
	seedPair     = uint64(0xc2b2ae3d27d4eb4f)
	seedOptional = uint64(0x165667b19e3779f9)
	seedSet      = uint64(0x27d4eb2f165667c5)
)

// mix64 is the 64 bit finalizer of MurmurHash3.
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// combine folds h into an order dependent running hash.
func combine(acc, h uint64) uint64 {
	return mix64(acc*PHI_C64 + h)
}
