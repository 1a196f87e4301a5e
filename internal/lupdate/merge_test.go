package lupdate

import (
	. "gopkg.in/check.v1"

	"github.com/snapcore/go-linguist"
)

var _ = Suite(&mergeSuite{})

type mergeSuite struct {
	existing *linguist.File
}

func (s *mergeSuite) SetUpTest(c *C) {
	s.existing = &linguist.File{
		Version:  "2.1",
		Language: "it_IT",
		Entries: []linguist.Entry{{
			Context:           "MainWindow",
			Source:            "CQ only",
			Translations:      []string{"Solo CQ"},
			TranslatorComment: "checked",
			Locations:         []linguist.Location{{File: "old.go", Line: 1}},
		}, {
			Context:      "MainWindow",
			Source:       "Hold Tx Freq",
			Translations: []string{"Mantieni Freq Tx"},
		}, {
			Context:      "MainWindow",
			Source:       "Erase",
			Translations: []string{"Cancella"},
			Status:       linguist.Vanished,
		}, {
			Context:      "MainWindow",
			Source:       "%n decode(s)",
			Translations: []string{"%n decodifica"},
		}},
	}
}

func (s *mergeSuite) extracted() []linguist.Entry {
	return []linguist.Entry{{
		Context:      "MainWindow",
		Source:       "CQ only",
		ExtraComment: "button",
		Status:       linguist.Unfinished,
		Locations:    []linguist.Location{{File: "main.go", Line: 12}},
	}, {
		Context: "MainWindow",
		Source:  "Erase",
		Status:  linguist.Unfinished,
	}, {
		Context: "MainWindow",
		Source:  "%n decode(s)",
		Numerus: true,
		Status:  linguist.Unfinished,
	}, {
		Context: "MainWindow",
		Source:  "Log QSO",
		Status:  linguist.Unfinished,
	}}
}

func (s *mergeSuite) TestMerge(c *C) {
	result, stats := Merge(s.existing, s.extracted(), MergeOptions{})
	c.Check(stats, Equals, MergeStats{Kept: 3, New: 1, Vanished: 1})
	c.Check(result.Language, Equals, "it_IT")
	c.Check(result.Version, Equals, "2.1")
	c.Check(result.Entries, DeepEquals, []linguist.Entry{{
		Context:           "MainWindow",
		Source:            "CQ only",
		ExtraComment:      "button",
		Translations:      []string{"Solo CQ"},
		TranslatorComment: "checked",
		Locations:         []linguist.Location{{File: "main.go", Line: 12}},
	}, {
		Context:      "MainWindow",
		Source:       "Hold Tx Freq",
		Translations: []string{"Mantieni Freq Tx"},
		Status:       linguist.Vanished,
	}, {
		Context:      "MainWindow",
		Source:       "Erase",
		Translations: []string{"Cancella"},
		Status:       linguist.Unfinished,
	}, {
		Context: "MainWindow",
		Source:  "%n decode(s)",
		Numerus: true,
		Status:  linguist.Unfinished,
	}, {
		Context: "MainWindow",
		Source:  "Log QSO",
		Status:  linguist.Unfinished,
	}})

	// the merged catalog loads
	_, err := linguist.NewStore(result.Language, result.Entries)
	c.Check(err, IsNil)
}

func (s *mergeSuite) TestMergeNoObsolete(c *C) {
	result, stats := Merge(s.existing, s.extracted(), MergeOptions{NoObsolete: true, NoLocation: true})
	c.Check(stats, Equals, MergeStats{Kept: 3, New: 1, Dropped: 1})
	c.Assert(result.Entries, HasLen, 4)
	for _, e := range result.Entries {
		c.Check(e.Status, Not(Equals), linguist.Vanished)
		c.Check(e.Locations, IsNil)
	}
}

func (s *mergeSuite) TestMergeVanishedDuplicate(c *C) {
	s.existing.Entries = append(s.existing.Entries, linguist.Entry{
		Context:      "MainWindow",
		Source:       "Erase",
		Translations: []string{"Cancella tutto"},
	})
	result, stats := Merge(s.existing, s.extracted(), MergeOptions{})
	c.Check(stats, Equals, MergeStats{Kept: 3, New: 1, Vanished: 2})
	c.Check(result.Entries[2].Status, Equals, linguist.Vanished)
	c.Check(result.Entries[4].Translations, DeepEquals, []string{"Cancella tutto"})
	c.Check(result.Entries[4].Status, Equals, linguist.Current)
}

func (s *mergeSuite) TestMergeDropsUntranslatedObsolete(c *C) {
	s.existing.Entries = append(s.existing.Entries, linguist.Entry{
		Context:      "MainWindow",
		Source:       "Halt Tx",
		Translations: []string{""},
		Status:       linguist.Unfinished,
	})
	result, stats := Merge(s.existing, s.extracted(), MergeOptions{})
	c.Check(stats, Equals, MergeStats{Kept: 3, New: 1, Vanished: 1, Dropped: 1})
	c.Check(result.Entries, HasLen, 5)
}

func (s *mergeSuite) TestMergeNew(c *C) {
	result, stats := Merge(nil, s.extracted(), MergeOptions{})
	c.Check(stats, Equals, MergeStats{New: 4})
	c.Check(result.Entries, HasLen, 4)
}
