package scroll

// Synchroniser is a barrier shared by the scrollers of one round. Tasks are
// identified by comparable values, normally their pointer.
type Synchroniser struct {
	synchronised map[any]bool
}

func NewSynchroniser() *Synchroniser {
	return &Synchroniser{synchronised: make(map[any]bool)}
}

// Busy marks task as not ready.
func (s *Synchroniser) Busy(task any) {
	s.synchronised[task] = false
}

// Ready marks task as ready.
func (s *Synchroniser) Ready(task any) {
	s.synchronised[task] = true
}

// Remove forgets task.
func (s *Synchroniser) Remove(task any) {
	delete(s.synchronised, task)
}

// Synchronised reports whether every registered task is ready. An empty
// Synchroniser is synchronised.
func (s *Synchroniser) Synchronised() bool {
	for _, ready := range s.synchronised {
		if !ready {
			return false
		}
	}
	return true
}

// Len returns the number of registered tasks.
func (s *Synchroniser) Len() int {
	return len(s.synchronised)
}
