package ocf

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Desc is a language-tagged description element.
type Desc struct {
	Lang string `xml:"lang,attr"`
	Text string `xml:",chardata"`
}

// Content declares a parameter's value type and optional default.
type Content struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr,omitempty"`
}

// Parameter describes one resource parameter in the meta-data document.
type Parameter struct {
	Name     string  `xml:"name,attr"`
	Required int     `xml:"required,attr"`
	Unique   int     `xml:"unique,attr"`
	LongDesc Desc    `xml:"longdesc"`
	Desc     Desc    `xml:"shortdesc"`
	Content  Content `xml:"content"`
}

// Action advertises a supported action with its timeout hint.
type Action struct {
	Name     string `xml:"name,attr"`
	Timeout  string `xml:"timeout,attr"`
	Interval string `xml:"interval,attr,omitempty"`
}

// Metadata is the resource-agent meta-data document.
type Metadata struct {
	XMLName    xml.Name    `xml:"resource-agent"`
	Name       string      `xml:"name,attr"`
	Version    string      `xml:"version,attr"`
	APIVersion string      `xml:"version"`
	LongDesc   Desc        `xml:"longdesc"`
	Desc       Desc        `xml:"shortdesc"`
	Parameters []Parameter `xml:"parameters>parameter"`
	Actions    []Action    `xml:"actions>action"`
}

// Write renders the document with the XML declaration and OCF doctype
// the cluster manager expects.
func (m Metadata) Write(w io.Writer) error {
	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `<!DOCTYPE resource-agent SYSTEM "ra-api-1.dtd">`); err != nil {
		return err
	}
	data, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("ocf: failed to marshal meta-data: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
