package tilestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openwebglobe/terrain/internal/delaunay"
)

func TestPTSRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "neighbor.pts")

	want := []delaunay.ElevationPoint{
		{X: 1, Y: 2, Elevation: 3, Weight: delaunay.WeightNormal},
		{X: -4, Y: 5.5, Elevation: -6, Weight: delaunay.WeightEdgeCut},
	}
	if err := WritePTS(path, want); err != nil {
		t.Fatalf("WritePTS: %v", err)
	}

	got, err := ReadPTS(path)
	if err != nil {
		t.Fatalf("ReadPTS: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ReadPTS returned %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].X != want[i].X || got[i].Y != want[i].Y ||
			got[i].Elevation != want[i].Elevation || got[i].Weight != want[i].Weight {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadPTSMissingFileIsEmpty(t *testing.T) {
	got, err := ReadPTS(filepath.Join(t.TempDir(), "does-not-exist.pts"))
	if err != nil {
		t.Fatalf("ReadPTS on missing file: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ReadPTS on missing file = %v, want empty", got)
	}
}

func TestReadPTSTruncatesPartialRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.pts")
	if err := WritePTS(path, []delaunay.ElevationPoint{{X: 1, Y: 1, Elevation: 1}}); err != nil {
		t.Fatalf("WritePTS: %v", err)
	}
	if err := AppendPTS(path, nil); err != nil {
		t.Fatalf("AppendPTS: %v", err)
	}

	// Append a truncated, partial trailing record directly.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := f.Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("write partial record: %v", err)
	}
	f.Close()

	got, err := ReadPTS(path)
	if err != nil {
		t.Fatalf("ReadPTS: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadPTS = %d points, want 1 (partial trailing record dropped)", len(got))
	}
}

func TestQueueFetchConsumesFromTail(t *testing.T) {
	dir := t.TempDir()
	jobsPath := filepath.Join(dir, "jobqueue.jobs")
	seekPath := filepath.Join(dir, "jobqueue.jobs.seek")
	lock := NewFileLock(filepath.Join(dir, "jobqueue.lock"), true)
	q := Open(jobsPath, seekPath, lock)

	records := []JobRecord{{X: 0, Y: 0, LOD: 10}, {X: 1, Y: 0, LOD: 10}, {X: 2, Y: 0, LOD: 10}}
	if err := q.Generate(records, true); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	batch, err := q.Fetch(2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(batch) != 2 || batch[0].X != 1 || batch[1].X != 2 {
		t.Fatalf("Fetch(2) = %+v, want [{1 0 10} {2 0 10}]", batch)
	}

	remaining, err := q.Remaining()
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("Remaining() = %d, want 1", remaining)
	}

	batch, err = q.Fetch(2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(batch) != 1 || batch[0].X != 0 {
		t.Fatalf("Fetch(2) after partial drain = %+v, want [{0 0 10}]", batch)
	}

	batch, err = q.Fetch(2)
	if err != nil {
		t.Fatalf("Fetch on exhausted queue: %v", err)
	}
	if len(batch) != 0 {
		t.Fatalf("Fetch on exhausted queue = %+v, want empty", batch)
	}
}

func TestQueueGenerateRefusesOverwriteWithoutOverride(t *testing.T) {
	dir := t.TempDir()
	jobsPath := filepath.Join(dir, "jobqueue.jobs")
	seekPath := filepath.Join(dir, "jobqueue.jobs.seek")
	lock := NewFileLock(filepath.Join(dir, "jobqueue.lock"), true)
	q := Open(jobsPath, seekPath, lock)

	if err := q.Generate([]JobRecord{{X: 1, Y: 1, LOD: 5}}, true); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := q.Generate([]JobRecord{{X: 2, Y: 2, LOD: 5}}, false); err == nil {
		t.Fatal("Generate with overrideExisting=false should refuse a populated queue")
	}
}
