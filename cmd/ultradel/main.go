// Command ultradel is the CLI surface for the ultradel package: argument
// parsing, path validation, a confirmation prompt, and progress rendering —
// all external-collaborator concerns the core package itself never touches.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blaubart69/ultradel"
	"github.com/blaubart69/ultradel/internal/config"
	"github.com/blaubart69/ultradel/internal/obslog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ultradel", flag.ContinueOnError)
	threads := fs.Int("w", 0, "number of worker goroutines (0 = CPU count)")
	batch := fs.Int("batch", 0, "max files per delete batch (0 = unbounded per folder)")
	ntapi := fs.Bool("ntapi", false, "accepted for compatibility; has no effect (single unlink primitive)")
	keepRoot := fs.Bool("keep-root", false, "do not remove the root folder itself")
	scanOnly := fs.Bool("scan-only", false, "only report counts, delete nothing")
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	verbose := fs.Bool("v", false, "verbose logging")
	noUI := fs.Bool("no-ui", false, "print ticks as plain log lines instead of a progress UI")

	if err := fs.Parse(args); err != nil {
		return 4
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [OPTS] {directory}\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		return 4
	}

	root, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "E:", err)
		return 1
	}
	st, err := os.Stat(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "E:", err)
		return 1
	}
	if !st.IsDir() {
		fmt.Fprintf(os.Stderr, "E: not a directory: %s\n", root)
		return 1
	}

	log := obslog.New(os.Stderr, *verbose)

	conf, err := config.Load(root)
	if err != nil {
		log.Warnf("loading config: %v", err)
	}
	if *threads != 0 {
		conf.Threads = *threads
	}
	if *batch != 0 {
		conf.DeleterBatch = *batch
	}
	if *ntapi {
		conf.DeleterNTAPI = true
	}
	if *keepRoot {
		conf.KeepRoot = true
	}

	if !*scanOnly && !*yes {
		if !confirm(root) {
			fmt.Fprintln(os.Stderr, "aborted.")
			return 3
		}
	}

	rootFolder := ultradel.NewFolder(root, 0)

	var ok bool
	if *noUI {
		ok = runPlain(rootFolder, conf, *scanOnly, log)
	} else {
		ok = runUI(rootFolder, conf, *scanOnly)
	}

	if !ok {
		fmt.Fprintln(os.Stderr, "cancelled.")
		return 2
	}
	return 0
}

func confirm(root string) bool {
	fmt.Printf("Permanently delete everything under %s ? [y/N] ", root)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

func runPlain(root *ultradel.Folder, conf ultradel.Config, scanOnly bool, log *obslog.Logger) bool {
	cb := func(info *ultradel.Info) bool {
		for _, e := range info.ScannerErr {
			log.Errorf("scan %s: %s", e.Func, e.Args)
		}
		for _, e := range info.DeleterErr {
			log.Errorf("delete %s: %s", e.Func, e.Args)
		}
		if info.Done {
			log.Infof("done: folders %d/%d files %d/%d bytes %d/%d",
				info.DDeleted, info.DFound, info.FDeleted, info.FFound, info.BDeleted, info.BFound)
		}
		return true
	}
	if scanOnly {
		return ultradel.Scan(root, conf, cb)
	}
	return ultradel.Delete(root, false, conf, cb)
}

func runUI(root *ultradel.Folder, conf ultradel.Config, scanOnly bool) bool {
	m := newProgressModel(root, conf, scanOnly)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "E:", err)
		return false
	}
	pm := final.(progressModel)
	return pm.result
}
