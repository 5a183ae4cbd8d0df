package entity

// TriggerKey names the event a template answers.
type TriggerKey string

const (
	TriggerKeyUserWelcome     TriggerKey = "user_welcome"
	TriggerKeyPasswordChanged TriggerKey = "password_changed"
)

func (t TriggerKey) String() string {
	return string(t)
}

// Template is an email subject and an html/template body.
type Template struct {
	TriggerKey TriggerKey
	Subject    string
	Body       string
}

var templates = map[TriggerKey]Template{
	TriggerKeyUserWelcome: {
		TriggerKey: TriggerKeyUserWelcome,
		Subject:    "Welcome to {{.company_name}}",
		Body: `<p>Hi {{.username}},</p>
<p>Your account has been created and your email address is verified. You can sign in any time.</p>
<p>Questions? Write to <a href="mailto:{{.support_email}}">{{.support_email}}</a>.</p>
<p>&copy; {{.year}} {{.company_name}}</p>`,
	},
	TriggerKeyPasswordChanged: {
		TriggerKey: TriggerKeyPasswordChanged,
		Subject:    "Your password was reset",
		Body: `<p>Hello,</p>
<p>The password for {{.email}} was reset on {{.reset_at}}. Every signed-in session has been logged out.</p>
<p>If this was not you, contact <a href="mailto:{{.support_email}}">{{.support_email}}</a> right away.</p>
<p>&copy; {{.year}} {{.company_name}}</p>`,
	},
}

// LookupTemplate returns the built-in template for tk.
func LookupTemplate(tk TriggerKey) (Template, bool) {
	t, ok := templates[tk]
	return t, ok
}
