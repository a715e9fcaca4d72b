package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose markup is known.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformUnknown    Platform = "unknown"
)

// boardProfile describes where a board puts the posting and what to strip around it.
type boardProfile struct {
	hosts   []string
	content []string
	noise   []string
}

// Order matters: the first profile whose host suffix matches wins.
var boardOrder = []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformAshby, PlatformLinkedIn}

var boards = map[Platform]boardProfile{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", ".job-post-container", "#content"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='descriptionText']", ".ashby-job-posting-right-pane", "main"},
	},
	PlatformLinkedIn: {
		hosts:   []string{"linkedin.com"},
		content: []string{".show-more-less-html__markup", ".description__text", ".jobs-description__content"},
		noise:   []string{".top-card-layout__cta-container", ".similar-jobs", ".sign-in-modal"},
	},
}

// sharedNoise is stripped on every board: apply forms, EEO blocks, share bars, consent banners.
var sharedNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board from the URL host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for _, p := range boardOrder {
		for _, h := range boards[p].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the posting selectors for platform, most
// specific first. Unknown boards get the generic JobPostingSelectors.
func PlatformContentSelectors(platform Platform) []string {
	if b, ok := boards[platform]; ok {
		return append([]string(nil), b.content...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns what to remove before extraction on platform.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), sharedNoise...)
	return append(out, boards[platform].noise...)
}
