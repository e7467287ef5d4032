package matching

// Stage is a step of a matching run. A run validates, fetches the profile,
// gates it, and then fetches opportunities, so Fetching is entered twice
// around Gating. Scoring, Ranking and Persisting follow, and the run ends in
// StageDone or StageFailed.
type Stage int

const (
	StageIdle Stage = iota
	StageValidating
	StageFetching
	StageGating
	StageScoring
	StageRanking
	StagePersisting
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageIdle:       "idle",
	StageValidating: "validating",
	StageFetching:   "fetching",
	StageGating:     "gating",
	StageScoring:    "scoring",
	StageRanking:    "ranking",
	StagePersisting: "persisting",
	StageDone:       "done",
	StageFailed:     "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
