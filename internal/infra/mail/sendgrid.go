package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/evalix/ai-readiness/internal/domain/notification"
)

const reportSubject = "Your AI readiness results"

var reportTmpl = template.Must(template.New("report").Parse(`<html>
<body style="font-family:Arial,sans-serif;color:#222">
  <h2>Hello {{.Name}},</h2>
  <p>thank you for completing the AI readiness check{{if .Company}} for {{.Company}}{{end}}. Here is your result:</p>
  {{range .Categories}}
  <h3>{{.Name}} &mdash; {{printf "%.1f" .Average}} / 5</h3>
  <p>{{.Evaluation}}</p>
  {{end}}
  {{if .Ambition}}<p><strong>Your ambition:</strong> {{.Ambition}}</p>{{end}}
  <p>We will be in touch shortly to discuss your next steps.</p>
</body>
</html>`))

// Sender dispatches the report mail through SendGrid.
type Sender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSender(apiKey, fromEmail, fromName string) *Sender {
	return &Sender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendReport renders the HTML report and sends it to the respondent, with
// the internal distribution list in bcc.
func (s *Sender) SendReport(ctx context.Context, rep notification.Report) error {
	var body bytes.Buffer
	if err := reportTmpl.Execute(&body, rep); err != nil {
		return fmt.Errorf("rendering report mail: %w", err)
	}

	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail(rep.Name, rep.To)

	msg := sgmail.NewV3Mail()
	msg.SetFrom(from)
	msg.Subject = reportSubject
	msg.AddContent(sgmail.NewContent("text/html", body.String()))

	p := sgmail.NewPersonalization()
	p.AddTos(to)
	for _, addr := range rep.CopyTo {
		p.AddBCCs(sgmail.NewEmail("", addr))
	}
	msg.AddPersonalizations(p)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
