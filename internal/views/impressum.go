package views

import "html/template"

// ImpressumPath is the route the legal notice is served on.
const ImpressumPath = "/impressum"

// Operator identifies who runs the site.
type Operator struct {
	Label string
	Lines []string
}

// Contact is the single outbound contact link.
type Contact struct {
	Label   string
	Network string
	URL     string
	Handle  string
}

// Disclaimer is the liability notice.
type Disclaimer struct {
	Label string
	Text  string
}

type impressumData struct {
	Header     template.HTML
	Heading    string
	Operator   Operator
	Contact    Contact
	Disclaimer Disclaimer
}

var (
	impressumOperator = Operator{
		Label: "Betreiber der Webseite:",
		Lines: []string{"Nicola Richli", "Unterdorf 7b", "5073 Gipf-Oberfrick", "Schweiz"},
	}

	impressumContact = Contact{
		Label:   "Kontakt:",
		Network: "X:",
		URL:     "https://x.com/NicolaRic2",
		Handle:  "@NicolaRic2",
	}

	impressumDisclaimer = Disclaimer{
		Label: "Haftungsausschluss:",
		Text: "Trotz sorgfältiger inhaltlicher Kontrolle übernehmen wir keine Haftung für die Inhalte externer Links. " +
			"Für den Inhalt der verlinkten Seiten sind ausschliesslich deren Betreiber verantwortlich.",
	}
)

// Impressum renders the legal notice fragment: the shared header followed by
// the content section. Output is identical on every call.
func Impressum() []byte {
	return mustRender("impressum", impressumData{
		Header:     headerHTML(),
		Heading:    "Impressum",
		Operator:   impressumOperator,
		Contact:    impressumContact,
		Disclaimer: impressumDisclaimer,
	})
}

// ImpressumDocument renders the legal notice as a complete HTML document.
func ImpressumDocument() []byte {
	doc, err := Document("Impressum", Impressum())
	if err != nil {
		panic(err)
	}
	return doc
}
