package novel

// ChangeKind classifies what happened to a cached chapter entry when
// compared against a fresh listing from the source.
type ChangeKind int

const (
	// ChangeRemoved means the index no longer appears in the fresh listing.
	ChangeRemoved ChangeKind = iota
	// ChangeRetitled means the index is still listed but under a new title.
	ChangeRetitled
	// ChangeAdded means the index appears only in the fresh listing.
	ChangeAdded
	// ChangeReplaced means the cached title moved to a different index
	// while its old index now carries another title. Renumber and retitle
	// at the same time cannot be told apart without refetching content.
	ChangeReplaced
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRemoved:
		return "removed"
	case ChangeRetitled:
		return "retitled"
	case ChangeAdded:
		return "added"
	case ChangeReplaced:
		return "replaced"
	}
	return "unknown"
}

// Change reports one difference between a cached chapter listing and a
// freshly fetched one.
type Change struct {
	Kind     ChangeKind
	Index    int
	OldTitle string
	NewTitle string
}

// DiffChapterLists compares a locally cached listing against a fresh one
// and reports removals, retitles and additions, so a caller can decide
// which chapters need a refetch without downloading any content.
func DiffChapterLists(cached, fresh []ChapterListElem) []Change {
	freshByIndex := make(map[int]string, len(fresh))
	for _, e := range fresh {
		freshByIndex[e.Index] = e.Title
	}
	freshTitles := make(map[string]int, len(fresh))
	for _, e := range fresh {
		freshTitles[e.Title] = e.Index
	}
	cachedByIndex := make(map[int]string, len(cached))
	for _, e := range cached {
		cachedByIndex[e.Index] = e.Title
	}

	var changes []Change
	for _, e := range cached {
		title, ok := freshByIndex[e.Index]
		switch {
		case !ok:
			changes = append(changes, Change{Kind: ChangeRemoved, Index: e.Index, OldTitle: e.Title})
		case title != e.Title:
			kind := ChangeRetitled
			if idx, moved := freshTitles[e.Title]; moved && idx != e.Index {
				// the old title still exists elsewhere: entries shifted
				kind = ChangeReplaced
			}
			changes = append(changes, Change{Kind: kind, Index: e.Index, OldTitle: e.Title, NewTitle: title})
		}
	}
	for _, e := range fresh {
		if _, ok := cachedByIndex[e.Index]; !ok {
			changes = append(changes, Change{Kind: ChangeAdded, Index: e.Index, NewTitle: e.Title})
		}
	}
	return changes
}
