package curves

import (
	"fmt"
	"sort"

	"github.com/vocdoni/dreip/crypto/ecc"
	bjj_iden3 "github.com/vocdoni/dreip/crypto/ecc/bjj_iden3"
	"github.com/vocdoni/dreip/crypto/ecc/bn254"
	"github.com/vocdoni/dreip/crypto/ecc/p256"
	"github.com/vocdoni/dreip/crypto/ecc/secp256k1"
)

const (
	CurveTypeP256            = p256.CurveType
	CurveTypeSecp256k1       = secp256k1.CurveType
	CurveTypeBN254           = bn254.CurveType
	CurveTypeBabyJubJubIden3 = bjj_iden3.CurveType

	// DefaultCurve is the group elections use unless told otherwise.
	DefaultCurve = CurveTypeP256
)

var suites = map[string]ecc.Suite{
	CurveTypeP256:            p256.Suite{},
	CurveTypeSecp256k1:       secp256k1.Suite{},
	CurveTypeBN254:           bn254.Suite{},
	CurveTypeBabyJubJubIden3: bjj_iden3.Suite{},
}

// New returns the Suite registered under the provided type string.
// The supported types are defined as constants in this package.
func New(curveType string) (ecc.Suite, error) {
	s, ok := suites[curveType]
	if !ok {
		return nil, fmt.Errorf("unsupported curve type: %s", curveType)
	}
	return s, nil
}

// Types returns the supported curve types, sorted.
func Types() []string {
	types := make([]string, 0, len(suites))
	for t := range suites {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
