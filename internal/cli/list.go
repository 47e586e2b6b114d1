package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Lists prints every list with its app count and owning collection.
func (a *App) Lists(ctx context.Context) error {
	withApps, err := a.catalog.ListsWithApps(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing lists", "error", err)
		return err
	}
	if len(withApps) == 0 {
		printlnFn("No lists yet. Create one with 'newlist'.")
		return nil
	}
	for _, l := range withApps {
		suffix := ""
		if l.List.CollectionID != "" {
			suffix = "  [collection " + l.List.CollectionID + "]"
		}
		printlnFn(fmt.Sprintf("%s  %s (%d apps)%s", l.List.ID, l.List.Title, l.AppCount(), suffix))
	}
	return nil
}

// ShowList resolves one list against the registry and prints its members,
// flagging the ones no longer installed.
func (a *App) ShowList(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter list id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	list, entries, err := a.catalog.ResolveList(ctx, id)
	if err != nil {
		a.log.Error(ctx, "error resolving list", "error", err)
		return err
	}

	printlnFn(list.Title)
	for _, e := range entries {
		label := e.Membership.PackageName
		if e.App != nil && e.App.Label != "" {
			label = fmt.Sprintf("%s (%s)", e.App.Label, e.Membership.PackageName)
		}
		if e.Missing {
			label += "  [missing]"
		}
		if len(e.Membership.Tags) > 0 {
			label += "  #" + strings.Join(e.Membership.Tags, " #")
		}
		printlnFn("  " + label)
	}
	return nil
}

// CreateList prompts for a title and creates an unassigned list.
func (a *App) CreateList(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter list title", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	list, err := a.catalog.CreateList(ctx, title, "")
	if err != nil {
		a.log.Error(ctx, "error creating list", "error", err)
		return err
	}
	printlnFn("Created list", list.ID)
	return nil
}

// RenameList prompts for a list id and its new title.
func (a *App) RenameList(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter list id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	if err := a.catalog.RenameList(ctx, id, title); err != nil {
		a.log.Error(ctx, "error renaming list", "error", err)
		return err
	}
	return nil
}

// DeleteList deletes a list after confirmation. Memberships go with it.
func (a *App) DeleteList(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter list id to delete", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	ok, err := GetConfirmation(a.reader, "Delete the list and all its memberships?", os.Stdout)
	if err != nil || !ok {
		return err
	}

	if err := a.catalog.DeleteList(ctx, id); err != nil {
		a.log.Error(ctx, "error deleting list", "error", err)
		return err
	}
	return nil
}

// AddApps prompts for a list id, package names and optional tags, then adds
// the packages to the list.
func (a *App) AddApps(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter list id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	packages, err := GetPackageNames(a.reader, os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	if len(packages) == 0 {
		printlnFn("Nothing to add.")
		return nil
	}
	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	dups, err := a.catalog.DuplicatesInList(ctx, id, packages)
	if err != nil {
		a.log.Error(ctx, "error checking duplicates", "error", err)
		return err
	}
	if len(dups) > 0 {
		printlnFn("Already in the list (will be updated):", strings.Join(dups, ", "))
	}

	if err := a.catalog.AddApps(ctx, id, packages, tags); err != nil {
		a.log.Error(ctx, "error adding apps", "error", err)
		return err
	}
	printlnFn(fmt.Sprintf("Added %d package(s)", len(packages)))
	return nil
}

// RemoveApps prompts for a list id and package names to remove.
func (a *App) RemoveApps(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter list id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	packages, err := GetPackageNames(a.reader, os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	if len(packages) == 0 {
		printlnFn("Nothing to remove.")
		return nil
	}

	if err := a.catalog.RemoveApps(ctx, id, packages); err != nil {
		a.log.Error(ctx, "error removing apps", "error", err)
		return err
	}
	return nil
}

// Tag replaces the tags of one membership.
func (a *App) Tag(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter list id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	pkg, err := GetSimpleText(a.reader, "Enter package name", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	if err := a.catalog.UpdateTags(ctx, id, pkg, tags); err != nil {
		a.log.Error(ctx, "error updating tags", "error", err)
		return err
	}
	return nil
}

// Merge prompts for a target list and source lists and merges the sources
// into the target. Sources are deleted afterwards.
func (a *App) Merge(ctx context.Context) error {
	target, err := GetSimpleText(a.reader, "Enter target list id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	line, err := GetSimpleText(a.reader, "Enter source list ids, space-separated", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	sources := strings.Fields(line)
	if len(sources) == 0 {
		printlnFn("Nothing to merge.")
		return nil
	}
	ok, err := GetConfirmation(a.reader,
		fmt.Sprintf("Merge %d list(s) into %s and delete them?", len(sources), target), os.Stdout)
	if err != nil || !ok {
		return err
	}

	if err := a.catalog.MergeLists(ctx, sources, target); err != nil {
		a.log.Error(ctx, "error merging lists", "error", err)
		return err
	}
	printlnFn("Merged.")
	return nil
}

// Duplicates checks package names against a list or a whole collection.
func (a *App) Duplicates(ctx context.Context) error {
	scope, err := GetSimpleText(a.reader, "Check against a (list) or a (coll)ection?", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	id, err := GetSimpleText(a.reader, "Enter id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	packages, err := GetPackageNames(a.reader, os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	var dups []string
	if strings.HasPrefix(scope, "c") {
		dups, err = a.catalog.DuplicatesInCollection(ctx, id, packages)
	} else {
		dups, err = a.catalog.DuplicatesInList(ctx, id, packages)
	}
	if err != nil {
		a.log.Error(ctx, "error checking duplicates", "error", err)
		return err
	}

	if len(dups) == 0 {
		printlnFn("No duplicates.")
		return nil
	}
	printlnFn("Duplicates:", strings.Join(dups, ", "))
	return nil
}
