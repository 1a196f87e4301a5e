package linguist

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTSRoundTrip(t *testing.T) {
	store := loadItalian(t)

	var buf bytes.Buffer
	if err := WriteTS(&buf, store.File()); err != nil {
		t.Fatal(err)
	}
	reparsed, err := ParseTS(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assert_equal(t, reparsed.Language(), "it_IT")
	assertDeepEqual(t, reparsed.Entries(), store.Entries())
	assertDeepEqual(t, reparsed.Stats(), store.Stats())
}

func TestWriteTS(t *testing.T) {
	f := &File{
		Language: "it",
		Entries: []Entry{
			{Context: "MainWindow", Source: "Tx & Rx", Comment: "<menu>", Translations: []string{"Tx \"e\" Rx"}},
			{Context: "CAboutDlg", Source: "OK"},
			{Context: "MainWindow", Source: "Bell\a", Translations: []string{"Campana\a"}, Status: Vanished},
			{Context: "MainWindow", Source: "%n QSO(s)", Numerus: true, Status: Unfinished,
				Translations: []string{"%n QSO", ""}, Locations: []Location{{File: "main.cpp", Line: 12}}},
		},
	}
	var buf bytes.Buffer
	if err := WriteTS(&buf, f); err != nil {
		t.Fatal(err)
	}
	expected := `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="it">
<context>
    <name>MainWindow</name>
    <message>
        <source>Tx &amp; Rx</source>
        <comment>&lt;menu&gt;</comment>
        <translation>Tx &quot;e&quot; Rx</translation>
    </message>
    <message>
        <source>Bell<byte value="x7"/></source>
        <translation type="vanished">Campana<byte value="x7"/></translation>
    </message>
    <message numerus="yes">
        <location filename="main.cpp" line="12"/>
        <source>%n QSO(s)</source>
        <translation type="unfinished">
            <numerusform>%n QSO</numerusform>
            <numerusform></numerusform>
        </translation>
    </message>
</context>
<context>
    <name>CAboutDlg</name>
    <message>
        <source>OK</source>
        <translation></translation>
    </message>
</context>
</TS>
`
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "<!DOCTYPE TS>") {
		t.Error("missing doctype")
	}
}

func TestWriteTSInheritedLocation(t *testing.T) {
	f := &File{
		Language: "it",
		Entries: []Entry{
			{Context: "MainWindow", Source: "CQ only", Translations: []string{"Solo CQ"},
				Locations: []Location{{File: "main.cpp", Line: 3}, {Line: 9}}},
		},
	}
	var buf bytes.Buffer
	if err := WriteTS(&buf, f); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n        <location line=\"9\"/>\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
	store, err := ParseTS(&buf)
	if err != nil {
		t.Fatal(err)
	}
	e, _ := store.Find("MainWindow", "CQ only", "")
	assertDeepEqual(t, e.Locations, []Location{{File: "main.cpp", Line: 3}, {File: "main.cpp", Line: 9}})

	// a store never holds locations without a file, so it round trips
	var again bytes.Buffer
	if err := WriteTS(&again, store.File()); err != nil {
		t.Fatal(err)
	}
	reparsed, err := ParseTS(&again)
	if err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, reparsed.Entries(), store.Entries())
}
