package machine

import "github.com/blaubart69/ultradel/internal/tree"

// Scan walks root without deleting anything. Returns false if the callback
// requested cancellation.
func (m *Machine) Scan(root *tree.Folder) bool {
	m.counters.addDFound(1)
	m.enqueuePh1(root)
	return m.loop()
}

// Delete removes root and everything beneath it. If prescanned, root's
// tree is already fully populated and no further enumeration happens —
// Delete instead walks a post-order census and enqueues phase 2/3 work
// directly. Otherwise it behaves like scan-and-delete: root is enqueued for
// phase 1 and the tree is discovered as it goes.
func (m *Machine) Delete(root *tree.Folder, prescanned bool) bool {
	m.counters.addDFound(1)

	if prescanned {
		return m.deletePrescanned(root)
	}

	m.enqueuePh1(root)
	return m.loop()
}

func (m *Machine) deletePrescanned(root *tree.Folder) bool {
	var census []*tree.Folder
	root.Census(&census)

	for _, f := range census {
		switch {
		case len(f.Files) > 0:
			m.enqueuePh2(f)
		case len(f.Folders) == 0:
			m.maybeScheduleSelfDelete(f)
		}
		m.counters.addFFound(uint64(len(f.Files)))
		var bytes uint64
		for _, file := range f.Files {
			bytes += uint64(file.Info.Size)
		}
		m.counters.addBFound(bytes)
		if f != root {
			m.counters.addDFound(1)
		}
	}

	return m.loop()
}
