package arrowchunk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"fquack/internal/vtab"
)

const reads = "@a x\nAC\n+\nII\n@b\nGT\n+\n#I\n@c\nN\n+\n!\n"

func scan(t *testing.T) *vtab.Handle {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "r.fastq")
	if err := os.WriteFile(fn, []byte(reads), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, bd, err := vtab.Bind([]any{fn})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	h, err := vtab.Init(bd)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestProduceIntoArrow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	h := scan(t)
	c := New(mem, 2)
	defer c.Release()

	var ids []string
	var batches []int64
	for {
		n, err := vtab.Produce(h, c)
		if err != nil {
			t.Fatalf("produce: %v", err)
		}
		if n == 0 {
			break
		}
		rec := c.NewRecord()
		batches = append(batches, rec.NumRows())
		if rec.NumCols() != 3 || rec.Schema().Field(1).Name != "sequence" {
			t.Fatalf("unexpected schema %v", rec.Schema())
		}
		col := rec.Column(vtab.ColMetadata).(*array.String)
		for i := 0; i < col.Len(); i++ {
			ids = append(ids, col.Value(i))
		}
		rec.Release()
	}
	if len(batches) != 2 || batches[0] != 2 || batches[1] != 1 {
		t.Fatalf("batches=%v", batches)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Fatalf("ids=%v", ids)
	}
}

func TestResetDropsRows(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	c := New(mem, 4)
	defer c.Release()
	c.Insert(vtab.ColMetadata, 0, "x")
	c.Insert(vtab.ColSequence, 0, "A")
	c.Insert(vtab.ColQuality, 0, "I")
	c.Reset()
	c.SetLen(0)
	rec := c.NewRecord()
	defer rec.Release()
	if rec.NumRows() != 0 || rec.Column(0).Len() != 0 {
		t.Fatalf("reset left %d rows", rec.Column(0).Len())
	}
}
