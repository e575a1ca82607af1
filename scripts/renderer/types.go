package renderer

// TemplateName represents a known template filename.
type TemplateName string

// Constants for known template filenames.
const (
	TplSiteConfig TemplateName = "config.js.tmpl"
)

// SiteConfigData holds the data required by the TplSiteConfig template.
// ApiURL may contain CloudFormation tokens; they resolve at deploy time.
type SiteConfigData struct {
	ApiURL string
	Stage  string
}
