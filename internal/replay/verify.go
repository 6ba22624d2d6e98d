package replay

import (
	"fmt"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

// Attempt is a run of records played against one fresh level state.
type Attempt struct {
	Level   string
	Records []Record
}

// Attempts splits records into attempts. A new attempt starts when the level
// changes or when a non-remake record does not advance the tick number.
func Attempts(records []Record) []Attempt {
	var out []Attempt
	for i, rec := range records {
		if i == 0 || startsAttempt(records[i-1], rec) {
			out = append(out, Attempt{Level: rec.Level})
		}
		cur := &out[len(out)-1]
		cur.Records = append(cur.Records, rec)
	}
	return out
}

func startsAttempt(prev, rec Record) bool {
	if rec.Level != prev.Level {
		return true
	}
	if rec.Remake {
		return rec.Tick != prev.Tick
	}
	return rec.Tick <= prev.Tick
}

// Divergence is the first record whose digest does not match the engine.
type Divergence struct {
	Index  int // index within the verified records
	Record Record
	Got    uint64
}

func (d Divergence) Error() string {
	return fmt.Sprintf("tick %d of %s diverged: recorded %016x, engine %016x",
		d.Record.Tick, d.Record.Level, d.Record.Digest, d.Got)
}

// Verify re-runs one attempt from seed and compares every digest. It returns
// nil when the engine reproduces the recording, the first Divergence when it
// does not, or an error for records that cannot be replayed.
func Verify(seed core.Seed, records []Record, opts ...core.Option) (*Divergence, error) {
	state := core.New(seed, opts...)
	tick := 0
	for i, rec := range records {
		m, err := core.ParseMovement(rec.Input)
		if err != nil {
			return nil, fmt.Errorf("replay: record %d: %w", i, err)
		}

		if rec.Remake {
			if rec.Tick != tick || tick == 0 {
				return nil, fmt.Errorf("replay: record %d remakes tick %d after tick %d", i, rec.Tick, tick)
			}
			state.Remake(m)
		} else {
			if rec.Tick != tick+1 {
				return nil, fmt.Errorf("replay: record %d has tick %d, expected %d", i, rec.Tick, tick+1)
			}
			state.Commit(m)
			tick++
		}

		if got := state.Snapshot().Digest(); got != rec.Digest {
			return &Divergence{Index: i, Record: rec, Got: got}, nil
		}
	}
	return nil, nil
}
