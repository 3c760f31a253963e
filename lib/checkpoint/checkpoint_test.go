package checkpoint

import (
	"testing"
	"time"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/selector"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

func TestWriteReadRoundTrip(t *testing.T) {
	records := []Record{
		{
			Configuration: selector.Configuration{
				Container: container.LinkedCells, Traversal: traversal.C08,
				DataLayout: traversal.SoA, Newton3: traversal.Newton3Enabled,
				CellSizeFactor: 1.2,
			},
			Time: 3 * time.Millisecond,
		},
		{
			Configuration: selector.Configuration{
				Container: container.DirectSum, Traversal: traversal.DSSequential,
				DataLayout: traversal.AoS, CellSizeFactor: 1.0,
			},
			Time: 500 * time.Microsecond,
		},
	}

	buf, err := WriteBytes(records)
	if err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}

	got, err := ReadBytes(buf)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	buf, err := WriteBytes(nil)
	if err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	buf[0] ^= 0xff
	if _, err := ReadBytes(buf); err == nil {
		t.Fatal("expected an error reading a checkpoint with a corrupted magic number")
	}
}
