package summary

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed email.html
var emailSource string

var emailTmpl = template.Must(template.New("email").Parse(emailSource))

type emailView struct {
	Day
	Greeting string
}

// HTML renders the email document for d. Task and note text is escaped.
func HTML(d Day) (string, error) {
	var buf bytes.Buffer
	v := emailView{Day: d, Greeting: nameOr(d.UserName, "there")}
	if err := emailTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
