package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/omensec/solsca/pkg/models"
)

type junitSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name  string       `xml:"name,attr"`
	Tests int          `xml:"tests,attr"`
	Cases []junitCase  `xml:"testcase"`
}

type junitCase struct {
	ClassName string       `xml:"classname,attr"`
	Name      string       `xml:"name,attr"`
	Failure   junitFailure `xml:"failure"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// WriteJUnit emits a single testsuite with one failing testcase per finding
// (§6.3), so the report plugs into CI systems that already understand
// JUnit's pass/fail model.
func WriteJUnit(r models.Report, w io.Writer) error {
	all := make([]models.Finding, 0, len(r.Vulnerabilities)+len(r.InformationalFindings))
	all = append(all, r.Vulnerabilities...)
	all = append(all, r.InformationalFindings...)

	suite := junitSuite{Name: "SmartContractSecurityChecks", Tests: len(all)}
	for _, f := range all {
		suite.Cases = append(suite.Cases, junitCase{
			ClassName: f.Detector,
			Name:      fmt.Sprintf("%s at line %d", f.Description, f.Location.StartLine),
			Failure: junitFailure{
				Message: f.Description,
				Text:    fmt.Sprintf("%s\n%s\n%d\n%s", f.Severity, f.Location.File, f.Location.StartLine, f.CodeSnippet),
			},
		})
	}

	doc := junitSuites{Suites: []junitSuite{suite}}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}
