package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/applists/internal/export"
)

// Export writes a list or a collection to a JSON file.
func (a *App) Export(ctx context.Context) error {
	scope, err := GetSimpleText(a.reader, "Export a (list) or a (coll)ection?", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	id, err := GetSimpleText(a.reader, "Enter id", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	var suggested string
	if strings.HasPrefix(scope, "c") {
		coll, err := a.catalog.GetCollection(ctx, id)
		if err != nil {
			a.log.Error(ctx, "error loading collection", "error", err)
			return err
		}
		suggested = export.SuggestFileName(coll.Name)
	} else {
		list, err := a.catalog.GetList(ctx, id)
		if err != nil {
			a.log.Error(ctx, "error loading list", "error", err)
			return err
		}
		suggested = export.SuggestFileName(list.Title)
	}

	path, err := GetSimpleText(a.reader,
		fmt.Sprintf("Enter file path (empty for %s)", suggested), os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}
	if path == "" {
		path = suggested
	}

	if strings.HasPrefix(scope, "c") {
		err = a.export.ExportCollectionToFile(ctx, id, path)
	} else {
		err = a.export.ExportListToFile(ctx, id, path)
	}
	if err != nil {
		a.log.Error(ctx, "error exporting", "error", err)
		return err
	}
	printlnFn("Exported to", path)
	return nil
}

// Import reads an export file, shows how many of its apps are still
// installed, and creates the list or collection after confirmation.
func (a *App) Import(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "error reading input", "error", err)
		return err
	}

	doc, result, err := a.export.ImportFile(ctx, path)
	if err != nil {
		a.log.Error(ctx, "error reading import", "error", err)
		return err
	}

	printlnFn(fmt.Sprintf("Found a %s document (schema v%d): %d app(s), %d installed, %d missing",
		doc.Kind, doc.SchemaVersion, result.Total(), len(result.Installed), len(result.Missing)))

	includeMissing := false
	if len(result.Missing) > 0 {
		includeMissing, err = GetConfirmation(a.reader, "Include apps that are not installed?", os.Stdout)
		if err != nil {
			a.log.Error(ctx, "error reading input", "error", err)
			return err
		}
	}

	ok, err := GetConfirmation(a.reader, "Proceed with the import?", os.Stdout)
	if err != nil || !ok {
		return err
	}

	var summary *export.ImportSummary
	if doc.Kind == export.KindCollection {
		summary, err = a.export.ConfirmImportCollection(ctx, doc, includeMissing)
	} else {
		summary, err = a.export.ConfirmImportList(ctx, doc, includeMissing)
	}
	if err != nil {
		a.log.Error(ctx, "error importing", "error", err)
		return err
	}

	name := summary.ListName
	if summary.CollectionName != "" {
		name = summary.CollectionName
	}
	printlnFn(fmt.Sprintf("Imported %q: %d list(s), %d of %d app(s)",
		name, summary.Lists, summary.ImportedApps, summary.TotalApps))
	return nil
}
