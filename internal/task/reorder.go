package task

// Reorder moves the task fromID so that it sits immediately before toID,
// or at the end when toID is empty or not present, and renumbers every
// order field to the new index. The sequence operated on is the manual
// order of tasks. If fromID is not present, or equals toID, the manual
// order is returned with its original order values. The input slice is
// not modified.
func Reorder(tasks []Task, fromID, toID string) []Task {
	seq := ManualOrder(tasks)
	from := IndexOf(seq, fromID)
	if from < 0 || fromID == toID {
		return seq
	}

	moved := seq[from]
	seq = append(seq[:from], seq[from+1:]...)

	to := -1
	if toID != "" {
		to = IndexOf(seq, toID)
	}
	if to < 0 {
		seq = append(seq, moved)
	} else {
		seq = append(seq, Task{})
		copy(seq[to+1:], seq[to:])
		seq[to] = moved
	}
	return renumber(seq)
}

func renumber(seq []Task) []Task {
	for i := range seq {
		seq[i].Order = i
	}
	return seq
}
