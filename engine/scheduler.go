package engine

// System is one stage of the frame pipeline.
type System interface {
	Update(e *Engine)
}

// SystemFunc adapts a function to System.
type SystemFunc func(e *Engine)

func (f SystemFunc) Update(e *Engine) { f(e) }

// Scheduler runs systems in the order they were added.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(e *Engine) {
	for _, system := range s.systems {
		system.Update(e)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
