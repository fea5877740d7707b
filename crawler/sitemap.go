package crawler

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// parseLocations scans a sitemap XML document and collects the text of every
// <loc> element in document order. Both urlset and sitemapindex documents
// satisfy this shape.
func parseLocations(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var urls []string
	var inLoc bool
	var loc strings.Builder

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "loc" {
				inLoc = true
				loc.Reset()
			}
		case xml.CharData:
			if inLoc {
				loc.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "loc" {
				inLoc = false
				if url := strings.TrimSpace(loc.String()); len(url) > 0 {
					urls = append(urls, url)
				}
			}
		}
	}

	return urls, nil
}
