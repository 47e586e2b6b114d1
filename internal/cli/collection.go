package cli

import (
	"context"
	"fmt"
	"os"
)

// Collections prints every collection with its list count.
func (a *App) Collections(ctx context.Context) error {
	colls, err := a.catalog.Collections(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing collections", "error", err)
		return err
	}
	if len(colls) == 0 {
		printlnFn("No collections yet. Create one with 'newcoll'.")
		return nil
	}
	for _, c := range colls {
		cwl, err := a.catalog.CollectionWithLists(ctx, c.ID)
		if err != nil {
			a.log.Error(ctx, "error loading collection", "error", err)
			return err
		}
		line := fmt.Sprintf("%s  %s (%d lists)", c.ID, c.Name, cwl.ListCount())
		if c.Description != "" {
			line += "  — " + c.Description
		}
		printlnFn(line)
	}
	return nil
}

// CreateCollection prompts for a name and description.
func (a *App) CreateCollection(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter collection name", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	description, err := GetSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	coll, err := a.catalog.CreateCollection(ctx, name, description)
	if err != nil {
		a.log.Error(ctx, "error creating collection", "error", err)
		return err
	}
	printlnFn("Created collection", coll.ID)
	return nil
}

// DeleteCollection deletes a collection; the user chooses whether contained
// lists are deleted too or become unassigned.
func (a *App) DeleteCollection(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter collection id to delete", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	deleteLists, err := GetConfirmation(a.reader,
		"Also delete the lists it contains? (No keeps them as unassigned)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	if err := a.catalog.DeleteCollection(ctx, id, deleteLists); err != nil {
		a.log.Error(ctx, "error deleting collection", "error", err)
		return err
	}
	return nil
}

// AssignList moves a list into a collection, or out of any collection when
// the collection id is left empty.
func (a *App) AssignList(ctx context.Context) error {
	listID, err := GetSimpleText(a.reader, "Enter list id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	collID, err := GetSimpleText(a.reader, "Enter collection id (empty to unassign)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	if collID == "" {
		err = a.catalog.RemoveListFromCollection(ctx, listID)
	} else {
		err = a.catalog.AssignListToCollection(ctx, listID, collID)
	}
	if err != nil {
		a.log.Error(ctx, "error assigning list", "error", err)
		return err
	}
	return nil
}
