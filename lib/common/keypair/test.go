package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Random makes a new keypair for test code and panics when the system
// random source fails.
func Random() *Full {
	kp, err := stellar.Random()
	if err != nil {
		panic(err)
	}

	return kp
}

// RandomMany makes n distinct keypairs.
func RandomMany(n int) []*Full {
	kps := make([]*Full, n)
	for i := range kps {
		kps[i] = Random()
	}

	return kps
}
