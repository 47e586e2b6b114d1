package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Lists(ctx context.Context) error
	ShowList(ctx context.Context) error
	CreateList(ctx context.Context) error
	RenameList(ctx context.Context) error
	DeleteList(ctx context.Context) error
	AddApps(ctx context.Context) error
	RemoveApps(ctx context.Context) error
	Tag(ctx context.Context) error
	Collections(ctx context.Context) error
	CreateCollection(ctx context.Context) error
	DeleteCollection(ctx context.Context) error
	AssignList(ctx context.Context) error
	Merge(ctx context.Context) error
	Duplicates(ctx context.Context) error
	Apps(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the applists CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Lists:
//	  - (l)ists        — list all lists with app counts
//	  - show           — show one list with resolved apps
//	  - newlist        — create a list
//	  - rename         — rename a list
//	  - dellist        — delete a list
//	  - add            — add packages to a list
//	  - remove         — remove packages from a list
//	  - tag            — replace the tags of one membership
//	  - merge          — merge several lists into a target
//	  - dups           — check packages for duplicates in a list or collection
//
//	Collections:
//	  - colls          — list all collections
//	  - newcoll        — create a collection
//	  - delcoll        — delete a collection (optionally with its lists)
//	  - assign         — move a list into / out of a collection
//
//	Registry & transfer:
//	  - apps           — show the installed-app snapshot
//	  - refresh        — rescan the registry now
//	  - export         — write a list or collection to a JSON file
//	  - import         — read a JSON file back into the catalog
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("applists %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Lists:       (l)ists, show, newlist, rename, dellist, add, remove, tag, merge, dups")
			printlnFn("Collections: colls, newcoll, delcoll, assign")
			printlnFn("Registry:    apps, refresh, export, import, exit")

		case "l", "lists":
			_ = a.Lists(ctx)

		case "show":
			_ = a.ShowList(ctx)

		case "newlist":
			_ = a.CreateList(ctx)

		case "rename":
			_ = a.RenameList(ctx)

		case "dellist":
			_ = a.DeleteList(ctx)

		case "add":
			_ = a.AddApps(ctx)

		case "remove":
			_ = a.RemoveApps(ctx)

		case "tag":
			_ = a.Tag(ctx)

		case "merge":
			_ = a.Merge(ctx)

		case "dups":
			_ = a.Duplicates(ctx)

		case "colls", "collections":
			_ = a.Collections(ctx)

		case "newcoll":
			_ = a.CreateCollection(ctx)

		case "delcoll":
			_ = a.DeleteCollection(ctx)

		case "assign":
			_ = a.AssignList(ctx)

		case "apps":
			_ = a.Apps(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "export":
			_ = a.Export(ctx)

		case "import":
			_ = a.Import(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
