package testutil

import (
	"strconv"

	"github.com/beevik/etree"
)

// CollectionItem describes one <item> in a collection fixture.
// Empty Name or Rating still emit the element; the Omit flags drop it entirely.
type CollectionItem struct {
	Name       string
	Rating     string
	OmitName   bool
	OmitStats  bool
	OmitRating bool
}

// AcceptedBody is what BGG sends while the export is being prepared.
const AcceptedBody = `<?xml version="1.0" encoding="utf-8"?>
<message>Your request for this collection has been accepted and will be processed.  Please try again later for access.</message>`

// CollectionXML renders a collection export shaped like the BGG XML API response.
func CollectionXML(items ...CollectionItem) string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8" standalone="yes"`)
	root := doc.CreateElement("items")
	root.CreateAttr("totalitems", strconv.Itoa(len(items)))

	for i, it := range items {
		item := root.CreateElement("item")
		item.CreateAttr("objecttype", "thing")
		item.CreateAttr("objectid", strconv.Itoa(1000 + i))
		if !it.OmitName {
			name := item.CreateElement("name")
			name.CreateAttr("sortindex", "1")
			name.SetText(it.Name)
		}
		item.CreateElement("yearpublished").SetText("1995")
		if it.OmitStats {
			continue
		}
		stats := item.CreateElement("stats")
		stats.CreateAttr("minplayers", "2")
		stats.CreateAttr("maxplayers", "4")
		if it.OmitRating {
			continue
		}
		rating := stats.CreateElement("rating")
		rating.CreateAttr("value", it.Rating)
		rating.CreateElement("usersrated").CreateAttr("value", "100")
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		panic(err)
	}
	return out
}

// SampleCollection is a small export with one unrated and one rated game.
func SampleCollection() string {
	return CollectionXML(
		CollectionItem{Name: "Catan", Rating: "N/A"},
		CollectionItem{Name: "Chess", Rating: "7.5"},
	)
}
