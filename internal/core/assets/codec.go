package assets

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// MaxListLen bounds any decoded array or map.
const MaxListLen = 1 << 24

// EncMode and DecMode are the CBOR modes for every record, including the
// payloads nested inside custom codecs such as Layer.
var (
	EncMode cbor.EncMode
	DecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("assets: failed to create CBOR enc mode: %v", err))
	}
	dm, err := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxListLen,
		MaxMapPairs:      MaxListLen,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("assets: failed to create CBOR dec mode: %v", err))
	}
	EncMode, DecMode = em, dm
}
