package mailer

import (
	"html/template"
	"strings"

	"inkwire.app/newsroom/internal/model"
)

// html/template escapes every interpolated value, so user-authored
// titles and bodies cannot inject markup into the email.
const notificationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a2e; max-width: 600px; margin: 0 auto;">
  <p>Hi {{.RecipientName}},</p>
  <h2 style="font-size: 18px;">{{.Title}}</h2>
  <p>{{.Body}}</p>
{{- if .ActionURL}}
  <p><a href="{{.ActionURL}}" style="color: #2a6df4;">Open in Newsroom</a></p>
{{- end}}
  <p style="color: #8a8a9e; font-size: 12px;">{{.FromName}}</p>
</body>
</html>
`

var notificationTmpl = template.Must(template.New("notification").Parse(notificationHTML))

type notificationData struct {
	RecipientName string
	Title         string
	Body          string
	ActionURL     string
	FromName      string
}

func renderNotification(data notificationData) (string, error) {
	var buf strings.Builder
	if err := notificationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var subjectPrefixes = map[model.NotificationKind]string{
	model.NotificationKindProjectStatusChanged: "Project update",
	model.NotificationKindContentSubmitted:     "Ready for review",
	model.NotificationKindContentDecided:       "Review decision",
	model.NotificationKindCommentAdded:         "New comment",
	model.NotificationKindSuggestionAdded:      "New suggestion",
	model.NotificationKindSuggestionResolved:   "Suggestion resolved",
}

// SubjectFor builds the email subject line for a notification kind.
func SubjectFor(kind model.NotificationKind, title string) string {
	prefix, ok := subjectPrefixes[kind]
	if !ok {
		prefix = "Notification"
	}
	if title == "" {
		return prefix
	}
	return prefix + ": " + title
}
