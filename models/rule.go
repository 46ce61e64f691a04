package models

// DomainRule maps a business-domain category to the title keywords that
// select it. Rules are evaluated in slice order.
type DomainRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}
