package scoring

import (
	"fmt"
	"sort"
	"time"
)

// tapErrorLimit is the most errors (missed targets plus stray taps) a
// tapping trial may have and still pass.
const tapErrorLimit = 2

// AttributeTaps assigns tap timestamps to letter indices. A tap belongs
// to letter i while letter i is the most recently started utterance:
// window i is [starts[i], starts[i+1]), and the final window extends
// lastWindow past the final start. Taps outside every window are
// dropped. The result is deduplicated and sorted.
func AttributeTaps(starts []time.Time, lastWindow time.Duration, taps []time.Time) []int {
	if len(starts) == 0 {
		return nil
	}
	end := starts[len(starts)-1].Add(lastWindow)

	seen := make(map[int]bool)
	var indices []int
	for _, tap := range taps {
		if tap.Before(starts[0]) || !tap.Before(end) {
			continue
		}
		// First start strictly after the tap; the tap belongs to the
		// letter before it.
		i := sort.Search(len(starts), func(i int) bool { return starts[i].After(tap) }) - 1
		if i < 0 || seen[i] {
			continue
		}
		seen[i] = true
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// TapErrors counts tapping mistakes against the letter sequence: every
// target letter with no tap is a miss, and every tap on a non-target
// letter is a stray. Duplicate indices in tapped are counted once.
func TapErrors(letters []rune, target rune, tapped []int) (misses, strays int) {
	tappedSet := make(map[int]bool, len(tapped))
	for _, i := range tapped {
		if i >= 0 && i < len(letters) {
			tappedSet[i] = true
		}
	}
	for i, l := range letters {
		if l == target && !tappedSet[i] {
			misses++
		}
	}
	for i := range tappedSet {
		if letters[i] != target {
			strays++
		}
	}
	return misses, strays
}

// ScoreTaps converts attributed tap indices into a pass/fail Result: at
// most two errors passes.
func ScoreTaps(letters []rune, target rune, tapped []int) Result {
	misses, strays := TapErrors(letters, target, tapped)
	errors := misses + strays

	targets := 0
	for _, l := range letters {
		if l == target {
			targets++
		}
	}

	res := Result{
		Expected: []string{string(target)},
		Detail: fmt.Sprintf("%d errors (%d of %d targets missed, %d stray taps)",
			errors, misses, targets, strays),
	}
	if errors <= tapErrorLimit {
		res.Score = 1
		res.Passed = true
	}
	return res
}
