package version

// Commit is one entry of a pull request's commit list.
type Commit struct {
	SHA string
}

// Version is the last-seen checkpoint handed to us by the CI scheduler.
type Version struct {
	SHA string `json:"sha"`
}

// Record is the version shape written back to the scheduler.
type Record struct {
	Ref string `json:"ref"`
}

// Resolve returns the commits to report, oldest-first.
//
// With no lastSeen, or a lastSeen that is no longer in commits (history was
// rewritten), only the tip is reported. When lastSeen is found, the matched
// commit and everything after it is reported, so the checkpoint itself is
// echoed back. The result is never nil.
func Resolve(commits []Commit, lastSeen *Version) []Record {
	if lastSeen != nil {
		if i := indexOf(commits, lastSeen.SHA); i >= 0 {
			return toRecords(commits[i:])
		}
	}
	return tip(commits)
}

// Found reports whether lastSeen is present in commits. Callers use it to
// tell the degraded path apart from a normal resolve.
func Found(commits []Commit, lastSeen *Version) bool {
	return lastSeen != nil && indexOf(commits, lastSeen.SHA) >= 0
}

func indexOf(commits []Commit, sha string) int {
	for i, c := range commits {
		if c.SHA == sha {
			return i
		}
	}
	return -1
}

func tip(commits []Commit) []Record {
	if len(commits) == 0 {
		return []Record{}
	}
	return toRecords(commits[len(commits)-1:])
}

func toRecords(commits []Commit) []Record {
	out := make([]Record, 0, len(commits))
	for _, c := range commits {
		out = append(out, Record{Ref: c.SHA})
	}
	return out
}
