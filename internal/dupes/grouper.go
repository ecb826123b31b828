package dupes

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"mediasort/internal/logging"
	"mediasort/internal/media"
)

// Options carries grouping tunables.
type Options struct {
	// Workers is the hash pool size. Zero or negative means one per CPU.
	Workers int
	// Hasher computes content hashes; defaults to FileHasher.
	Hasher Hasher
	// OnProgress, when set, is called after each completed hash with the
	// number of finished and total hash tasks.
	OnProgress func(done, total int)
}

// Group is a set of records sharing identical size and content hash, with at
// least two members. Members are sorted by path.
type Group struct {
	Size    int64
	Digest  string
	Records []*media.Record
}

// GroupDuplicates partitions records into duplicate groups using a two-stage
// filter: exact byte size, then content hash. Hashes are computed only for
// records whose size bucket has at least two members, by a fixed pool of
// workers whose results merge at a single point; the outcome is independent
// of worker completion order. Records that become unreadable during hashing
// are excluded from their bucket with a warning and never abort the pass.
func GroupDuplicates(ctx context.Context, records []*media.Record, opts Options, logger *slog.Logger) []Group {
	log := logging.NewComponentLogger(logger, "dupes")

	buckets := make(map[int64][]*media.Record)
	for _, rec := range records {
		buckets[rec.Size] = append(buckets[rec.Size], rec)
	}

	var pending []*media.Record
	for _, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}
		for _, rec := range bucket {
			if rec.Hash() == "" {
				pending = append(pending, rec)
			}
		}
	}
	hashAll(ctx, pending, opts, log)

	groups := make([]Group, 0)
	for size, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}
		byDigest := make(map[string][]*media.Record)
		for _, rec := range bucket {
			digest := rec.Hash()
			if digest == "" {
				// Unreadable during hashing; already reported.
				continue
			}
			byDigest[digest] = append(byDigest[digest], rec)
		}
		for digest, members := range byDigest {
			if len(members) < 2 {
				continue
			}
			sort.Slice(members, func(i, j int) bool { return members[i].Path < members[j].Path })
			groups = append(groups, Group{Size: size, Digest: digest, Records: members})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Size != groups[j].Size {
			return groups[i].Size > groups[j].Size
		}
		return groups[i].Digest < groups[j].Digest
	})
	return groups
}

type hashResult struct {
	rec    *media.Record
	digest string
	err    error
}

// hashAll fans the pending records out to a fixed worker pool and merges the
// results sequentially. Each record is assigned to exactly one worker; a
// partial result is never merged.
func hashAll(ctx context.Context, pending []*media.Record, opts Options, log *slog.Logger) {
	if len(pending) == 0 {
		return
	}

	hasher := opts.Hasher
	if hasher == nil {
		hasher = FileHasher{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	tasks := make(chan *media.Record)
	results := make(chan hashResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for rec := range tasks {
				digest, err := hasher.HashFile(ctx, rec.Path)
				results <- hashResult{rec: rec, digest: digest, err: err}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, rec := range pending {
			select {
			case tasks <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	total := len(pending)
	done := 0
	for result := range results {
		done++
		if result.err != nil {
			log.Warn("excluding unreadable file from duplicate detection",
				logging.String("path", result.rec.Path),
				logging.Error(result.err))
		} else {
			result.rec.SetHash(result.digest)
		}
		if opts.OnProgress != nil {
			opts.OnProgress(done, total)
		}
	}
}
