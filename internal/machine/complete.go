package machine

import (
	"github.com/blaubart69/ultradel/internal/task"
)

// complete dispatches a drained task to its phase's completion handler. All
// completion handling runs on the loop goroutine — it is the only place
// that mutates ph{1,2,3}Work/Done, scannerErr/deleterErr, and foldersTogo,
// so none of it needs synchronization.
func (m *Machine) complete(t *task.Task) {
	switch t.Phase {
	case task.PhaseScan:
		m.completePh1(t)
	case task.PhaseDeleteFiles:
		m.completePh2(t)
	case task.PhaseDeleteSelf:
		m.completePh3(t)
	default:
		panic("ultradel: task completed in an unknown phase")
	}
	m.pool.Put(t)
}

func (m *Machine) completePh1(t *task.Task) {
	curr := t.Curr
	m.ph1Done++

	for _, sub := range curr.Folders {
		if sub.Self.Info.Attrs.IsReparsePoint() {
			// Never descended into: its own items stays at zero, so its
			// self-deletion (the reparse point entry itself, not its
			// target) is schedulable immediately rather than waiting on
			// children that will never arrive.
			if m.deleteMode {
				m.maybeScheduleSelfDelete(sub)
			}
			continue
		}
		m.enqueuePh1(sub)
	}

	if m.deleteMode {
		switch {
		case len(curr.Files) > 0:
			m.enqueuePh2(curr)
		case len(curr.Folders) == 0:
			m.maybeScheduleSelfDelete(curr)
		}
	}

	m.foldersTogo = m.ph1Work - m.ph1Done
	m.scannerErr = appendFSI(m.scannerErr[:0], t.Errors)
	m.deleterErr = nil
}

func (m *Machine) completePh2(t *task.Task) {
	curr := t.Curr
	m.ph2Done++

	m.maybeScheduleSelfDelete(curr)

	m.deleterErr = appendFSI(m.deleterErr[:0], t.Errors)
	m.scannerErr = nil
}

func (m *Machine) completePh3(t *task.Task) {
	m.ph3Done++

	parent := t.Curr.Parent
	if parent != nil {
		m.maybeScheduleSelfDelete(parent)
	}

	m.deleterErr = appendFSI(m.deleterErr[:0], t.Errors)
	m.scannerErr = nil
}
