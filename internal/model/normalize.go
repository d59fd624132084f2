package model

// Percent returns round(100*part/total) with halves rounded up.
// A zero total yields 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// ClampProgress limits a progress value to 0..100
func ClampProgress(progress int) int {
	switch {
	case progress < 0:
		return 0
	case progress > 100:
		return 100
	default:
		return progress
	}
}

// TaskCounts returns the number of tasks, how many are done and the
// derived completion percent.
func TaskCounts(p Project) (total, done, percent int) {
	total = len(p.Tasks)
	for _, t := range p.Tasks {
		if t.Done {
			done++
		}
	}
	return total, done, Percent(done, total)
}

// Normalize reconciles progress and status before stats are shown or saved.
//
// Progress is re-derived from the tasks when there are any. A project without
// tasks keeps its manually entered progress.
func Normalize(p Project) Project {
	if total, _, percent := TaskCounts(p); total > 0 {
		p.Progress = percent
	}
	return coupleStatus(p)
}

// RecomputeProgress is the task-mutation path: progress always comes from
// the task list, so a project whose last task was removed drops to 0.
func RecomputeProgress(p Project) Project {
	_, _, percent := TaskCounts(p)
	p.Progress = percent
	return coupleStatus(p)
}

func coupleStatus(p Project) Project {
	p.Progress = ClampProgress(p.Progress)
	if !p.Status.IsValid() {
		p.Status = StatusOngoing
	}
	switch {
	case p.Progress >= 100:
		p.Status = StatusCompleted
	case p.Status == StatusCompleted:
		p.Status = StatusOngoing
	}
	return p
}
