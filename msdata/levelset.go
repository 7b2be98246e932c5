package msdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// LevelSet is a set of acquisition levels, used to select the spectra
// whose profile data is centroided during materialization. It wraps a
// 32-bit Roaring Bitmap. A nil *LevelSet is the empty set.
type LevelSet struct {
	rb *roaring.Bitmap
}

// NewLevelSet creates a set holding the given levels.
func NewLevelSet(levels ...int) *LevelSet {
	s := &LevelSet{rb: roaring.New()}
	for _, l := range levels {
		s.Add(l)
	}
	return s
}

// ParseLevelSet parses a comma separated list of levels and inclusive
// ranges, e.g. "1-2,4". An empty string is the empty set.
func ParseLevelSet(spec string) (*LevelSet, error) {
	s := NewLevelSet()
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		loStr, hiStr, isRange := strings.Cut(part, "-")
		lo, err := strconv.Atoi(strings.TrimSpace(loStr))
		if err != nil || lo < 0 {
			return nil, fmt.Errorf("msdata: bad level %q", part)
		}
		hi := lo
		if isRange {
			hi, err = strconv.Atoi(strings.TrimSpace(hiStr))
			if err != nil || hi < lo {
				return nil, fmt.Errorf("msdata: bad level range %q", part)
			}
		}
		s.rb.AddRange(uint64(lo), uint64(hi)+1)
	}
	return s, nil
}

// Add adds a level to the set. Negative levels are ignored.
func (s *LevelSet) Add(level int) {
	if level >= 0 {
		s.rb.Add(uint32(level))
	}
}

// Contains reports whether level is in the set.
func (s *LevelSet) Contains(level int) bool {
	if s == nil || s.rb == nil || level < 0 {
		return false
	}
	return s.rb.Contains(uint32(level))
}

// IsEmpty returns true if the set holds no levels.
func (s *LevelSet) IsEmpty() bool {
	return s == nil || s.rb == nil || s.rb.IsEmpty()
}

// Levels returns the levels in ascending order.
func (s *LevelSet) Levels() []int {
	if s.IsEmpty() {
		return nil
	}
	levels := make([]int, 0, s.rb.GetCardinality())
	it := s.rb.Iterator()
	for it.HasNext() {
		levels = append(levels, int(it.Next()))
	}
	return levels
}

// String formats the set the way ParseLevelSet reads it.
func (s *LevelSet) String() string {
	levels := s.Levels()
	var b strings.Builder
	for i := 0; i < len(levels); {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		j := i
		for j+1 < len(levels) && levels[j+1] == levels[j]+1 {
			j++
		}
		if j > i {
			fmt.Fprintf(&b, "%d-%d", levels[i], levels[j])
		} else {
			fmt.Fprintf(&b, "%d", levels[i])
		}
		i = j + 1
	}
	return b.String()
}
