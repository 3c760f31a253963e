/*Package checkpoint persists a tuner's measurement history to disk between
runs, so a resumed simulation does not have to re-run a tuning phase it
already completed. Its on-disk framing (a magic number, a version, a
length-prefixed zstd block) is grounded on compress.go's Writer/Reader
pair, generalized from that package's field-oriented column format to a
flat run of fixed-size Configuration+timing records.
*/
package checkpoint

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/DataDog/zstd"

	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/selector"
)

// MagicNumber identifies a checkpoint file so a corrupted or foreign file
// fails loudly instead of silently mis-decoding.
const MagicNumber = 0xa0700a5

// Version is bumped whenever the record layout below changes.
const Version = 1

// recordSize is a Configuration's 13-byte record plus an 8-byte
// nanosecond duration.
const recordSize = selector.RecordSize + 8

// Record is one persisted tuning measurement: a configuration and the
// wall-clock time one sample of it took.
type Record struct {
	Configuration selector.Configuration
	Time          time.Duration
}

// Write compresses and serialises records to w, prefixed by the magic
// number, version and compressed-payload length, mirroring compress.go's
// WriteCompressedIntsZStd framing.
func Write(w io.Writer, records []Record) error {
	raw := make([]byte, 0, len(records)*recordSize)
	for _, r := range records {
		cfg := r.Configuration.Serialize()
		raw = append(raw, cfg[:]...)
		var tbuf [8]byte
		binary.LittleEndian.PutUint64(tbuf[:], uint64(r.Time))
		raw = append(raw, tbuf[:]...)
	}

	compressed, err := zstd.CompressLevel(nil, raw, 3)
	if err != nil {
		return autopaserr.Newf("checkpoint: compressing %d records: %v", len(records), err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(MagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(Version)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(records))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(compressed))); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

// Read decodes a checkpoint file written by Write.
func Read(r io.Reader) ([]Record, error) {
	var magic, version, count uint32
	var compressedLen uint64
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != MagicNumber {
		return nil, autopaserr.Newf("checkpoint: bad magic number %#x, expected %#x", magic, MagicNumber)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, autopaserr.Newf("checkpoint: unsupported version %d, expected %d", version, Version)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &compressedLen); err != nil {
		return nil, err
	}

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}

	raw, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, autopaserr.Newf("checkpoint: decompressing payload: %v", err)
	}
	if len(raw) != int(count)*recordSize {
		return nil, autopaserr.Newf("checkpoint: decompressed payload has length %d, want %d for %d records", len(raw), int(count)*recordSize, count)
	}

	records := make([]Record, count)
	for i := range records {
		off := i * recordSize
		var cfg [selector.RecordSize]byte
		copy(cfg[:], raw[off:off+selector.RecordSize])
		records[i].Configuration = selector.DeserializeConfiguration(cfg)
		records[i].Time = time.Duration(binary.LittleEndian.Uint64(raw[off+selector.RecordSize : off+recordSize]))
	}
	return records, nil
}

// WriteBytes and ReadBytes are Write/Read specialised to an in-memory
// buffer, for a caller that embeds a checkpoint inline in a larger file
// rather than owning its own file handle.
func WriteBytes(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ReadBytes(b []byte) ([]Record, error) {
	return Read(bytes.NewReader(b))
}
