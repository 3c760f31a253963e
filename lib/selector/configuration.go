/*Package selector implements AutoPas' L3 tuning layer: the Configuration
tuple, search-space enumeration and filtering, the fastestAbs/fastestMean/
fastestMedian selection strategies, and the idle/tuning/committed state
machine that drives which Configuration a caller's next pairwise iteration
uses.
*/
package selector

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

// Configuration is the five-way tuple AutoPas tunes over, plus the
// cell-size factor, per the component design's Configuration tuple.
type Configuration struct {
	Container     container.Option
	Traversal     traversal.Option
	LoadEstimator traversal.LoadEstimator
	DataLayout    traversal.DataLayout
	Newton3       traversal.Newton3Option
	CellSizeFactor float64
}

// RecordSize is the fixed byte length of a serialised Configuration: five
// one-byte enum codes followed by an 8-byte IEEE-754 cell-size factor.
const RecordSize = 13

// Serialize encodes c into the fixed 13-byte record. Endianness is a local
// choice (little-endian) since the byte layout only needs to round-trip
// through this package and lib/checkpoint, never across a wire to another
// implementation.
func (c Configuration) Serialize() [RecordSize]byte {
	var buf [RecordSize]byte
	buf[0] = byte(c.Container)
	buf[1] = byte(c.Traversal)
	buf[2] = byte(c.LoadEstimator)
	buf[3] = byte(c.DataLayout)
	buf[4] = byte(c.Newton3)
	binary.LittleEndian.PutUint64(buf[5:], math.Float64bits(c.CellSizeFactor))
	return buf
}

// DeserializeConfiguration decodes a Configuration from a 13-byte record
// produced by Serialize.
func DeserializeConfiguration(buf [RecordSize]byte) Configuration {
	return Configuration{
		Container:      container.Option(buf[0]),
		Traversal:      traversal.Option(buf[1]),
		LoadEstimator:  traversal.LoadEstimator(buf[2]),
		DataLayout:     traversal.DataLayout(buf[3]),
		Newton3:        traversal.Newton3Option(buf[4]),
		CellSizeFactor: math.Float64frombits(binary.LittleEndian.Uint64(buf[5:])),
	}
}

func (c Configuration) String() string {
	return c.Container.String() + "/" + c.Traversal.String() + "/" +
		c.DataLayout.String() + "/newton3=" + c.Newton3.String() + "/csf=" +
		strconv.FormatFloat(c.CellSizeFactor, 'g', -1, 64)
}
