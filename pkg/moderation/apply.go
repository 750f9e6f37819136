package moderation

import (
	"fmt"

	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server/store"
)

// Apply writes a queued change to the content store
func Apply(cs store.ContentStore, change *model.PendingChange) error {
	data := content.Record(change.Data)
	if data == nil {
		data = content.Record{}
	}

	switch change.Section {
	case content.SectionDescription:
		_, err := cs.PutDescription(change.Lang, change.CountryCode, data)
		return err

	case content.SectionHeaders:
		header := content.Header{Title: data.String("title"), Description: data.String("description")}
		_, err := cs.PutHeader(change.Lang, change.CountryCode, change.ItemID, header)
		return err

	case content.SectionCountries:
		_, err := cs.CreateCountry(change.Lang, data.String("code"), data.String("name"))
		return err
	}

	if sec, ok := content.LookupSection(change.Section); ok {
		return applyItem(cs, sec, change, data)
	}
	if child, ok := content.LookupChild(change.Section); ok {
		return applyChild(cs, child, change, data)
	}
	return fmt.Errorf("unknown section %q", change.Section)
}

func applyItem(cs store.ContentStore, sec *content.Section, change *model.PendingChange, data content.Record) error {
	switch change.Type {
	case model.ChangeTypeCreate:
		rec := data
		if rec.ID() == "" {
			prepared, err := content.Prepare(sec, data)
			if err != nil {
				return err
			}
			rec = prepared
		}
		_, err := cs.CreateItem(sec, change.Lang, change.CountryCode, rec)
		return err
	case model.ChangeTypeEdit:
		_, err := cs.UpdateItem(sec, change.Lang, change.CountryCode, change.ItemID, data)
		return err
	case model.ChangeTypeDelete:
		return cs.DeleteItem(sec, change.Lang, change.CountryCode, change.ItemID)
	}
	return fmt.Errorf("unknown change type %v", change.Type)
}

func applyChild(cs store.ContentStore, c *content.Child, change *model.PendingChange, data content.Record) error {
	parentID := change.Parent(c.ParentKey)
	switch change.Type {
	case model.ChangeTypeCreate:
		rec := data
		if rec.ID() == "" {
			prepared, err := content.PrepareChild(c, data)
			if err != nil {
				return err
			}
			rec = prepared
		}
		_, err := cs.CreateChild(c, change.Lang, change.CountryCode, parentID, rec)
		return err
	case model.ChangeTypeEdit:
		_, err := cs.UpdateChild(c, change.Lang, change.CountryCode, parentID, change.ItemID, data)
		return err
	case model.ChangeTypeDelete:
		return cs.DeleteChild(c, change.Lang, change.CountryCode, parentID, change.ItemID)
	}
	return fmt.Errorf("unknown change type %v", change.Type)
}
