package notifier

import "engagement-scheduler/internal/pkg/errs"

var ErrUnknownContentRef = errs.New("unknown content ref")

// Template is the rendered shape of one nudge. Content is deliberately
// static: personalization copy is out of scope for the scheduler.
type Template struct {
	Subject string
	Text    string
	HTML    string
}

// builtinTemplates maps stage content refs to message content. Stages
// reference content only by ref, so copy changes never touch the catalogue.
var builtinTemplates = map[string]Template{
	"email/login-recovery/3h": {
		Subject: "Your course is ready when you are",
		Text:    "You signed up a few hours ago but haven't logged in yet. Your first lesson is waiting.",
		HTML:    "<p>You signed up a few hours ago but haven't logged in yet. Your first lesson is waiting.</p>",
	},
	"email/login-recovery/24h": {
		Subject: "Still there? Your account is waiting",
		Text:    "It's been a day since you signed up. Log in to start learning.",
		HTML:    "<p>It's been a day since you signed up. Log in to start learning.</p>",
	},
	"email/login-recovery/72h": {
		Subject: "Don't lose your spot",
		Text:    "Three days in and we haven't seen you yet. Your enrollment is still active.",
		HTML:    "<p>Three days in and we haven't seen you yet. Your enrollment is still active.</p>",
	},
	"email/login-recovery/7d": {
		Subject: "One last nudge",
		Text:    "A week has passed since you signed up. This is our last reminder to log in.",
		HTML:    "<p>A week has passed since you signed up. This is our last reminder to log in.</p>",
	},
	"email/onboarding/profile": {
		Subject: "Finish setting up your profile",
		Text:    "Complete your profile so we can recommend the right courses.",
		HTML:    "<p>Complete your profile so we can recommend the right courses.</p>",
	},
	"email/onboarding/first-lesson": {
		Subject: "Your first lesson is a click away",
		Text:    "You set up your account but haven't finished a lesson yet. Start with a short one.",
		HTML:    "<p>You set up your account but haven't finished a lesson yet. Start with a short one.</p>",
	},
}

func resolveTemplate(contentRef string) (Template, error) {
	tpl, ok := builtinTemplates[contentRef]
	if !ok {
		return Template{}, errs.Wrap(ErrUnknownContentRef, contentRef)
	}
	return tpl, nil
}
