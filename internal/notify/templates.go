package notify

// templateSet holds the raw sources of one message. Subject and Text are
// text/template, HTML is html/template. Text may be empty.
type templateSet struct {
	Subject string
	Text    string
	HTML    string
	// Receipt attaches a plain text receipt rendered from receiptTemplate.
	Receipt bool
}

// Keys are kind/action/audience with an optional /status suffix matching
// the new status. Lookups fall back from the most to the least specific key
// and finally to generic/action/audience.
var builtinTemplates = map[string]templateSet{
	"donation/created/recipient": {
		Subject: `Your donation pledge {{.Entity.TransactionID}}`,
		Text: `Dear {{name .Entity.DonorName}},

We have recorded your donation of {{money .Entity.Amount}} (reference {{.Entity.TransactionID}}).
You will receive a receipt as soon as the payment is confirmed.

{{.Org}}`,
		HTML: `<p>Dear {{name .Entity.DonorName}},</p>
<p>We have recorded your donation of <strong>{{money .Entity.Amount}}</strong> (reference <code>{{.Entity.TransactionID}}</code>).</p>
<p>You will receive a receipt as soon as the payment is confirmed.</p>
<p>{{.Org}}</p>`,
	},
	"donation/created/admin": {
		Subject: `New donation {{.Entity.TransactionID}} ({{money .Entity.Amount}})`,
		Text:    `Donation {{.Entity.TransactionID}} of {{money .Entity.Amount}} from {{.Entity.DonorEmail}} is pending.`,
		HTML:    `<p>Donation <code>{{.Entity.TransactionID}}</code> of {{money .Entity.Amount}} from {{.Entity.DonorEmail}} is pending.</p>`,
	},
	"donation/status_changed/recipient/completed": {
		Subject: `Thank you for your donation`,
		Text: `Dear {{name .Entity.DonorName}},

Your payment of {{money .Entity.Amount}} was received. Your receipt is attached.
Reference: {{.Entity.TransactionID}}

{{.Org}}`,
		HTML: `<p>Dear {{name .Entity.DonorName}},</p>
<p>Your payment of <strong>{{money .Entity.Amount}}</strong> was received. Your receipt is attached.</p>
<p>Reference: <code>{{.Entity.TransactionID}}</code></p>
<p>{{.Org}}</p>`,
		Receipt: true,
	},
	"donation/status_changed/recipient/failed": {
		Subject: `We could not confirm your payment`,
		Text: `Dear {{name .Entity.DonorName}},

We could not verify the payment for donation {{.Entity.TransactionID}}. No receipt was issued.
Please contact us if you were charged.

{{.Org}}`,
		HTML: `<p>Dear {{name .Entity.DonorName}},</p>
<p>We could not verify the payment for donation <code>{{.Entity.TransactionID}}</code>. No receipt was issued.</p>
<p>Please contact us if you were charged.</p>
<p>{{.Org}}</p>`,
	},
	"donation/status_changed/recipient/refunded": {
		Subject: `Your donation has been refunded`,
		Text:    `Donation {{.Entity.TransactionID}} of {{money .Entity.Amount}} has been refunded.`,
		HTML:    `<p>Donation <code>{{.Entity.TransactionID}}</code> of {{money .Entity.Amount}} has been refunded.</p>`,
	},
	"volunteer/created/recipient": {
		Subject: `Thanks for volunteering with {{.Org}}`,
		Text: `Hi {{.Entity.Name}},

We received your volunteer application and will be in touch soon.

{{.Org}}`,
		HTML: `<p>Hi {{.Entity.Name}},</p><p>We received your volunteer application and will be in touch soon.</p><p>{{.Org}}</p>`,
	},
	"volunteer/created/admin": {
		Subject: `New volunteer application: {{.Entity.Name}}`,
		Text:    `{{.Entity.Name}} <{{.Entity.Email}}> applied. Skills: {{.Entity.Skills}}`,
		HTML:    `<p>{{.Entity.Name}} &lt;{{.Entity.Email}}&gt; applied.</p><p>Skills: {{.Entity.Skills}}</p>`,
	},
	"volunteer/status_changed/recipient/active": {
		Subject: `Welcome aboard, {{.Entity.Name}}`,
		Text:    `Hi {{.Entity.Name}}, your volunteer application was approved. Welcome to {{.Org}}!`,
		HTML:    `<p>Hi {{.Entity.Name}}, your volunteer application was approved. Welcome to {{.Org}}!</p>`,
	},
	"volunteer/status_changed/recipient/rejected": {
		Subject: `Your volunteer application`,
		Text:    `Hi {{.Entity.Name}}, thank you for your interest. We are unable to take your application forward at this time.`,
		HTML:    `<p>Hi {{.Entity.Name}}, thank you for your interest. We are unable to take your application forward at this time.</p>`,
	},
	"event_registration/created/recipient": {
		Subject: `Registration received{{with .Entity.EventTitle}}: {{.}}{{end}}`,
		Text:    `Hi {{.Entity.Name}}, we received your registration{{with .Entity.EventTitle}} for {{.}}{{end}}. We will confirm your seat shortly.`,
		HTML:    `<p>Hi {{.Entity.Name}}, we received your registration{{with .Entity.EventTitle}} for <strong>{{.}}</strong>{{end}}. We will confirm your seat shortly.</p>`,
	},
	"event_registration/created/admin": {
		Subject: `New event registration: {{.Entity.Name}}`,
		Text:    `{{.Entity.Name}} <{{.Entity.Email}}> registered for event #{{.Entity.EventID}} with {{.Entity.Guests}} guest(s).`,
		HTML:    `<p>{{.Entity.Name}} &lt;{{.Entity.Email}}&gt; registered for event #{{.Entity.EventID}} with {{.Entity.Guests}} guest(s).</p>`,
	},
	"event_registration/status_changed/recipient/confirmed": {
		Subject: `Your seat is confirmed{{with .Entity.EventTitle}}: {{.}}{{end}}`,
		Text:    `Hi {{.Entity.Name}}, your registration is confirmed. See you there!`,
		HTML:    `<p>Hi {{.Entity.Name}}, your registration is confirmed. See you there!</p>`,
	},
	"event_registration/status_changed/recipient/cancelled": {
		Subject: `Your registration was cancelled`,
		Text:    `Hi {{.Entity.Name}}, your registration{{with .Entity.EventTitle}} for {{.}}{{end}} was cancelled.`,
		HTML:    `<p>Hi {{.Entity.Name}}, your registration{{with .Entity.EventTitle}} for {{.}}{{end}} was cancelled.</p>`,
	},
	"contact/created/recipient": {
		Subject: `We received your message`,
		Text:    `Hi {{.Entity.Name}}, thanks for reaching out. We usually reply within two working days.`,
		HTML:    `<p>Hi {{.Entity.Name}}, thanks for reaching out. We usually reply within two working days.</p>`,
	},
	"contact/created/admin": {
		Subject: `Contact form: {{or .Entity.Subject "(no subject)"}}`,
		Text: `From: {{.Entity.Name}} <{{.Entity.Email}}>

{{.Entity.Message}}`,
		HTML: `<p>From: {{.Entity.Name}} &lt;{{.Entity.Email}}&gt;</p><blockquote>{{.Entity.Message}}</blockquote>`,
	},
	"newsletter/created/recipient": {
		Subject: `You are subscribed to {{.Org}} updates`,
		Text:    `Thanks for subscribing. You will hear about new projects and events first.`,
		HTML:    `<p>Thanks for subscribing. You will hear about new projects and events first.</p>`,
	},
	"newsletter/status_changed/recipient/active": {
		Subject: `Welcome back`,
		Text:    `Your subscription to {{.Org}} updates is active again.`,
		HTML:    `<p>Your subscription to {{.Org}} updates is active again.</p>`,
	},
	"newsletter/status_changed/recipient/unsubscribed": {
		Subject: `You have been unsubscribed`,
		Text:    `You will no longer receive updates from {{.Org}}.`,
		HTML:    `<p>You will no longer receive updates from {{.Org}}.</p>`,
	},
	"project/created/subscriber": {
		Subject: `New project: {{.Entity.Title}}`,
		Text: `{{.Entity.Title}}
{{with .Entity.Summary}}
{{.}}
{{end}}
{{.Org}}`,
		HTML: `<h2>{{.Entity.Title}}</h2>{{with .Entity.Summary}}<p>{{.}}</p>{{end}}<p>{{.Org}}</p>`,
	},
	"event/created/subscriber": {
		Subject: `Join us: {{.Entity.Title}}`,
		Text: `{{.Entity.Title}}
When: {{date .Entity.StartsAt}}{{with .Entity.Location}}
Where: {{.}}{{end}}

{{.Org}}`,
		HTML: `<h2>{{.Entity.Title}}</h2><p>When: {{date .Entity.StartsAt}}</p>{{with .Entity.Location}}<p>Where: {{.}}</p>{{end}}<p>{{.Org}}</p>`,
	},

	"generic/created/recipient": {
		Subject: `Thank you for contacting {{.Org}}`,
		Text:    `We received your {{kind .Kind}} and will get back to you.`,
		HTML:    `<p>We received your {{kind .Kind}} and will get back to you.</p>`,
	},
	"generic/created/admin": {
		Subject: `New {{kind .Kind}} #{{.Entity.NotifyID}}`,
		Text:    `A new {{kind .Kind}} (#{{.Entity.NotifyID}}) was submitted.`,
		HTML:    `<p>A new {{kind .Kind}} (#{{.Entity.NotifyID}}) was submitted.</p>`,
	},
	"generic/created/subscriber": {
		Subject: `News from {{.Org}}`,
		Text:    `There is a new {{kind .Kind}} you may be interested in.`,
		HTML:    `<p>There is a new {{kind .Kind}} you may be interested in.</p>`,
	},
	"generic/status_changed/recipient": {
		Subject: `Your {{kind .Kind}} is now {{.New}}`,
		Text:    `The status of your {{kind .Kind}} changed from {{.Old}} to {{.New}}.`,
		HTML:    `<p>The status of your {{kind .Kind}} changed from <em>{{.Old}}</em> to <strong>{{.New}}</strong>.</p>`,
	},
	"generic/status_changed/admin": {
		Subject: `{{kind .Kind}} #{{.Entity.NotifyID}} is now {{.New}}`,
		Text:    `{{kind .Kind}} #{{.Entity.NotifyID}} moved from {{.Old}} to {{.New}}.`,
		HTML:    `<p>{{kind .Kind}} #{{.Entity.NotifyID}} moved from {{.Old}} to {{.New}}.</p>`,
	},
}

const receiptTemplate = `DONATION RECEIPT
{{.Org}}

Reference:   {{.Entity.TransactionID}}
Date:        {{date .Entity.UpdatedAt}}
Donor:       {{name .Entity.DonorName}}
Email:       {{.Entity.DonorEmail}}{{with .Entity.TaxID}}
Tax ID:      {{.}}{{end}}
Amount:      {{money .Entity.Amount}}
Payment ID:  {{.Entity.GatewayPaymentID}}
`
