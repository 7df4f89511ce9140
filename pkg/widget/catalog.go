package widget

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRoute is the page whose context is used for unconfigured routes.
const DefaultRoute = "/"

// GeneralTopic is the topic whose table backs every other topic.
const GeneralTopic = "general"

// PageContext is the static per-route configuration of the widget.
type PageContext struct {
	Topic        string   `json:"topic" yaml:"topic"`
	Greeting     string   `json:"greeting" yaml:"greeting"`
	QuickReplies []string `json:"quick_replies" yaml:"quick_replies"`
}

// Response is a scripted bot reply.
type Response struct {
	Content string         `json:"content" yaml:"content"`
	Actions []ActionButton `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Rule binds a keyword phrase to a response.
type Rule struct {
	Keyword  string `yaml:"keyword"`
	Response `yaml:",inline"`
}

// ResponseTable is scanned in order; the first matching rule wins.
type ResponseTable []Rule

// Catalog holds the page contexts and response tables. It is never mutated
// after construction and is safe to share between widgets.
type Catalog struct {
	Contexts  map[string]PageContext   `yaml:"contexts"`
	Responses map[string]ResponseTable `yaml:"responses"`
	Fallback  Response                 `yaml:"fallback"`
}

// Context returns the page context for path, or the default route's context.
func (c *Catalog) Context(path string) PageContext {
	if pc, ok := c.Contexts[path]; ok {
		return pc
	}
	return c.Contexts[DefaultRoute]
}

// Table returns the response table for topic, or the general table.
func (c *Catalog) Table(topic string) ResponseTable {
	if table, ok := c.Responses[topic]; ok {
		return table
	}
	return c.Responses[GeneralTopic]
}

// Match resolves the scripted reply for input under topic.
func (c *Catalog) Match(topic, input string) Response {
	lowered := strings.ToLower(input)

	if r, ok := c.Table(topic).find(lowered); ok {
		return r
	}
	if r, ok := c.Responses[GeneralTopic].find(lowered); ok {
		return r
	}
	return c.Fallback
}

func (t ResponseTable) find(lowered string) (Response, bool) {
	for _, rule := range t {
		if strings.Contains(lowered, strings.ToLower(rule.Keyword)) {
			return rule.Response, true
		}
	}
	return Response{}, false
}

// Validate checks the entries every lookup falls back to.
func (c *Catalog) Validate() error {
	var errs []error
	if _, ok := c.Contexts[DefaultRoute]; !ok {
		errs = append(errs, fmt.Errorf("missing page context for %q", DefaultRoute))
	}
	if _, ok := c.Responses[GeneralTopic]; !ok {
		errs = append(errs, fmt.Errorf("missing response table %q", GeneralTopic))
	}
	if strings.TrimSpace(c.Fallback.Content) == "" {
		errs = append(errs, errors.New("fallback response has no content"))
	}
	for topic, table := range c.Responses {
		for i, rule := range table {
			if strings.TrimSpace(rule.Keyword) == "" {
				errs = append(errs, fmt.Errorf("responses[%s][%d]: empty keyword", topic, i))
			}
		}
	}
	return errors.Join(errs...)
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}
