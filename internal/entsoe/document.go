package entsoe

// Wire format of the ENTSO-E publication market document. Element names
// are matched without a namespace so that schema revisions of the same
// document (:7:0 vs :7:3 namespace URIs) decode identically. The root
// element name is deliberately not pinned: a no-data acknowledgement
// document simply decodes to zero TimeSeries.

type marketDocument struct {
	TimeSeries []timeSeries `xml:"TimeSeries"`
}

type timeSeries struct {
	Periods []period `xml:"Period"`
}

type period struct {
	Start  string  `xml:"timeInterval>start"`
	Points []point `xml:"Point"`
}

type point struct {
	Position string `xml:"position"`
	Price    string `xml:"price.amount"`
}
