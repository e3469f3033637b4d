package tilestore

import (
	"encoding/binary"
	"fmt"
	"os"
)

// jobRecordSize is sizeof({int32 x; int32 y; int32 lod;}), the common
// layout named in spec.md §6 "Job-queue record".
const jobRecordSize = 3 * 4

// JobRecord is one tile coordinate queued for processing.
type JobRecord struct {
	X, Y, LOD int32
}

// Queue is the append-only job-queue file and its sibling .seek cursor
// file, per spec.md §4.11. Workers consume from the tail toward byte 0:
// the cursor starts at the queue's end-of-file offset and Fetch walks
// it backward, so a worker that crashes mid-fetch leaves the cursor at
// the boundary of the last completed fetch rather than losing records.
type Queue struct {
	JobsPath string
	SeekPath string
	Lock     *FileLock
}

// Open returns a Queue bound to jobsPath/seekPath, locking through lock
// (pass a FileLock built with noLock=true to disable locking, per
// --nolock / --enable_locking=false).
func Open(jobsPath, seekPath string, lock *FileLock) *Queue {
	return &Queue{JobsPath: jobsPath, SeekPath: seekPath, Lock: lock}
}

// Generate writes records to the queue file. overrideExisting
// (--overridejobqueue) truncates and replaces any existing queue and
// resets the cursor to the new end-of-file; otherwise (--no_override)
// Generate refuses to touch an already-populated queue.
func (q *Queue) Generate(records []JobRecord, overrideExisting bool) error {
	return q.Lock.WithLock(func() error {
		if !overrideExisting {
			if info, err := os.Stat(q.JobsPath); err == nil && info.Size() > 0 {
				return fmt.Errorf("tilestore: job queue %s already exists (use --overridejobqueue)", q.JobsPath)
			}
		}
		f, err := os.OpenFile(q.JobsPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		buf := make([]byte, jobRecordSize)
		for _, r := range records {
			binary.LittleEndian.PutUint32(buf[0:4], uint32(r.X))
			binary.LittleEndian.PutUint32(buf[4:8], uint32(r.Y))
			binary.LittleEndian.PutUint32(buf[8:12], uint32(r.LOD))
			if _, err := f.Write(buf); err != nil {
				f.Close()
				return err
			}
		}
		if err := f.Close(); err != nil {
			return err
		}
		return q.writeCursor(int64(len(records)) * jobRecordSize)
	})
}

// Fetch acquires the queue lock, reads up to amount records ending at
// the current cursor, rewinds the cursor by however many records were
// actually available, and releases the lock. Records are returned in
// file order (earliest-queued first among the fetched batch). An empty,
// nil-error result means the queue is exhausted.
func (q *Queue) Fetch(amount int) ([]JobRecord, error) {
	var out []JobRecord
	err := q.Lock.WithLock(func() error {
		cursor, err := q.readCursor()
		if err != nil {
			return err
		}
		if cursor <= 0 {
			return nil
		}

		n := int64(amount)
		start := cursor - n*jobRecordSize
		if start < 0 {
			start = 0
		}
		length := cursor - start
		if length <= 0 {
			return nil
		}

		f, err := os.Open(q.JobsPath)
		if err != nil {
			if os.IsNotExist(err) {
				return q.writeCursor(0)
			}
			return err
		}
		defer f.Close()

		buf := make([]byte, length)
		if _, err := f.ReadAt(buf, start); err != nil {
			return err
		}

		count := int(length / jobRecordSize)
		out = make([]JobRecord, count)
		for i := 0; i < count; i++ {
			rec := buf[i*jobRecordSize : (i+1)*jobRecordSize]
			out[i] = JobRecord{
				X:   int32(binary.LittleEndian.Uint32(rec[0:4])),
				Y:   int32(binary.LittleEndian.Uint32(rec[4:8])),
				LOD: int32(binary.LittleEndian.Uint32(rec[8:12])),
			}
		}
		return q.writeCursor(start)
	})
	return out, err
}

// Remaining reports how many records are still unfetched, without
// acquiring the lock -- advisory only, for status reporting.
func (q *Queue) Remaining() (int64, error) {
	cursor, err := q.readCursor()
	if err != nil {
		return 0, err
	}
	return cursor / jobRecordSize, nil
}

func (q *Queue) readCursor() (int64, error) {
	data, err := os.ReadFile(q.SeekPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return 0, err
		}
		info, statErr := os.Stat(q.JobsPath)
		if statErr != nil {
			if os.IsNotExist(statErr) {
				return 0, nil
			}
			return 0, statErr
		}
		return info.Size(), nil
	}
	if len(data) < 8 {
		return 0, nil
	}
	return int64(binary.LittleEndian.Uint64(data[:8])), nil
}

func (q *Queue) writeCursor(cursor int64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(cursor))
	return os.WriteFile(q.SeekPath, buf, 0o644)
}
